package lexer

import (
	"fmt"
	"strings"

	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/token"
)

// LexDump shows the token stream of a line, for use with 'hub peek'.
func LexDump(input string) {
	fmt.Print("\nLexer output:\n\n")
	l := New("REPL input", input)
	for tok := l.NextNonCommentToken(); tok.Type != token.EOF; tok = l.NextNonCommentToken() {
		fmt.Println(tok)
	}
	fmt.Println()
}

type Lexer struct {
	reader strings.Reader
	input  string
	ch     rune // current rune under examination
	line   int  // the line number
	char   int  // the character number
	tstart int  // the value of char at the start of a token
	Ers    object.Errors
	source string
}

func New(source, input string) *Lexer {
	r := *strings.NewReader(input)
	l := &Lexer{reader: r,
		input:  input,
		line:   1,
		char:   -1,
		Ers:    []*object.Error{},
		source: source,
	}
	l.readChar()
	return l
}

// NextNonCommentToken is what the parser actually consumes: comments are
// tokens so that tooling can see them, but they mean nothing.
func (l *Lexer) NextNonCommentToken() token.Token {
	for tok := l.NextToken(); ; tok = l.NextToken() {
		if tok.Type != token.COMMENT {
			return tok
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	l.tstart = l.char

	switch l.ch {
	case '(':
		tok = l.NewToken(token.LPAREN, "(")
	case ')':
		tok = l.NewToken(token.RPAREN, ")")
	case '[':
		tok = l.NewToken(token.LBRACK, "[")
	case ']':
		tok = l.NewToken(token.RBRACK, "]")
	case '\'':
		tok = l.NewToken(token.QUOTE, "'")
	case ';':
		tok = l.NewToken(token.COMMENT, l.readComment())
	case '"':
		s, ok := l.readString()
		tok = l.NewToken(token.STRING, s)
		if !ok {
			l.Throw("parse/eof/string", tok)
			tok = l.NewToken(token.ILLEGAL, "parse/eof/string")
		}
	case 0:
		tok = l.NewToken(token.EOF, "EOF")
	default:
		// Anything else begins an atom, which runs to the next delimiter.
		// The parser decides what the atom is and whether it is legal.
		tok = l.NewToken(token.ATOM, l.readAtom())
		tok.Line = l.line
		tok.ChStart = l.tstart
		tok.ChEnd = l.char
		return tok
	}
	tok.Line = l.line
	tok.ChStart = l.tstart
	tok.ChEnd = l.char
	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

func (l *Lexer) readChar() {
	l.char++
	if l.ch == '\n' {
		l.line++
		l.char = 0
		l.tstart = 0
	}
	if l.reader.Len() == 0 {
		l.ch = 0
	} else {
		l.ch, _, _ = l.reader.ReadRune()
	}
}

func (l *Lexer) peekChar() rune {
	if l.reader.Len() == 0 {
		return 0
	} else {
		ru, _, _ := l.reader.ReadRune()
		l.reader.UnreadRune()
		return ru
	}
}

func (l *Lexer) readComment() string {
	result := ""
	for !(l.peekChar() == '\n' || l.peekChar() == 0) {
		result = result + string(l.peekChar())
		l.readChar()
	}
	return result
}

// Strings are raw: everything between the quotes is the string, newlines
// included, and there are no escape sequences. Only EOF can break one.
func (l *Lexer) readString() (string, bool) {
	result := ""
	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
		result = result + string(l.ch)
	}
	if l.ch == 0 {
		return result, false
	}
	return result, true
}

func (l *Lexer) readAtom() string {
	result := ""
	for !isDelimiter(l.ch) {
		result = result + string(l.ch)
		l.readChar()
	}
	return result
}

func isDelimiter(ch rune) bool {
	return ch == 0 || ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' ||
		ch == '(' || ch == ')' || ch == '[' || ch == ']' || ch == '\'' || ch == ';' || ch == '"'
}

func (l *Lexer) NewToken(tokenType token.TokenType, st string) token.Token {
	return token.Token{Type: tokenType, Literal: st, Source: l.source, Line: l.line, ChStart: l.tstart, ChEnd: l.char}
}

func (l *Lexer) Throw(errorID string, tok token.Token, args ...any) {
	l.Ers = object.Throw(errorID, l.Ers, tok, args...)
}
