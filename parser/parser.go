package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/tim-hardcastle/Remora/ast"
	"github.com/tim-hardcastle/Remora/lexer"
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/token"
)

// The parser turns a string of source code into a slice of S-expressions.
// There is deliberately little to it: the shape of the language is all
// brackets, and everything that isn't a bracket, a quote, or a string
// literal is an atom, classified here as a boolean, a number, or an
// identifier.
//
// A parser is reused from line to line of the REPL, accumulating errors
// until its owner calls ClearErrors.

type Parser struct {
	lex      *lexer.Lexer
	curToken token.Token
	Errors   object.Errors
}

func New() *Parser {
	return &Parser{Errors: []*object.Error{}}
}

// ParseLine parses a whole string of source, whether a REPL line or a file,
// and returns every top-level expression in it. After an error it resumes
// at the next top-level expression, so one line can report several.
func (p *Parser) ParseLine(source, input string) []ast.SExpr {
	p.lex = lexer.New(source, input)
	p.nextToken()
	exprs := []ast.SExpr{}
	for p.curToken.Type != token.EOF {
		expr := p.parseExpression()
		if expr != nil {
			exprs = append(exprs, expr)
		}
	}
	p.Errors = append(p.Errors, p.lex.Ers...)
	return exprs
}

func (p *Parser) nextToken() {
	p.curToken = p.lex.NextNonCommentToken()
}

func (p *Parser) parseExpression() ast.SExpr {
	tok := p.curToken
	switch tok.Type {
	case token.ATOM:
		p.nextToken()
		return p.parseAtom(tok)
	case token.STRING:
		p.nextToken()
		return &ast.String{Token: tok, Value: tok.Literal}
	case token.QUOTE:
		p.nextToken()
		if p.curToken.Type == token.EOF {
			p.Throw("parse/eof/quote", tok)
			return nil
		}
		quoted := p.parseExpression()
		if quoted == nil {
			return nil
		}
		return &ast.Quoted{Token: tok, Expr: quoted}
	case token.LPAREN:
		return p.parseList(token.RPAREN)
	case token.LBRACK:
		return p.parseList(token.RBRACK)
	case token.RPAREN, token.RBRACK:
		p.Throw("parse/close", tok, tok.Literal)
		p.nextToken()
		return nil
	default:
		// An ILLEGAL token: the lexer has already complained about it.
		p.nextToken()
		return nil
	}
}

func (p *Parser) parseList(closer token.TokenType) ast.SExpr {
	openTok := p.curToken
	p.nextToken()
	elements := []ast.SExpr{}
	for p.curToken.Type != closer {
		switch p.curToken.Type {
		case token.EOF:
			p.Throw("parse/eof/list", openTok)
			return nil
		case token.RPAREN, token.RBRACK:
			// The closer that doesn't match the opener.
			p.Throw("parse/close", p.curToken, p.curToken.Literal)
			p.nextToken()
			return nil
		}
		element := p.parseExpression()
		if element != nil {
			elements = append(elements, element)
		}
	}
	p.nextToken()
	return &ast.List{Token: openTok, Elements: elements}
}

func (p *Parser) parseAtom(tok token.Token) ast.SExpr {
	switch tok.Literal {
	case "true", "#t":
		return &ast.Boolean{Token: tok, Value: true}
	case "false", "#f":
		return &ast.Boolean{Token: tok, Value: false}
	}
	if num, err := strconv.ParseFloat(tok.Literal, 64); err == nil {
		return &ast.Number{Token: tok, Value: num}
	}
	name, variadic := strings.CutSuffix(tok.Literal, "...")
	if name == "" {
		p.Throw("parse/atom/empty", tok)
		return nil
	}
	for _, ch := range name {
		if !isIdentRune(ch) {
			p.Throw("parse/atom/bad", tok, tok.Literal)
			return nil
		}
	}
	return &ast.Identifier{Token: tok, Value: name, Variadic: variadic}
}

func isIdentRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) ||
		strings.ContainsRune("-_+/*%><=?!&$.#:", ch)
}

// ParseDump shows the S-expressions a line parses to, for use with 'hub peek'.
func (p *Parser) ParseDump(source, input string) {
	fmt.Print("\nParser output:\n\n")
	for _, expr := range p.ParseLine(source, input) {
		fmt.Println(expr.String())
	}
	p.ClearErrors()
	fmt.Println()
}

func (p *Parser) Throw(errorID string, tok token.Token, args ...any) {
	p.Errors = object.Throw(errorID, p.Errors, tok, args...)
}

func (p *Parser) ErrorsExist() bool {
	return len(p.Errors) > 0
}

func (p *Parser) ReturnErrors() string {
	return object.GetList(p.Errors)
}

func (p *Parser) ClearErrors() {
	p.Errors = []*object.Error{}
}
