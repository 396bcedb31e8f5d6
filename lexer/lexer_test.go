package lexer

import (
	"testing"

	"github.com/tim-hardcastle/Remora/token"
)

func TestNextToken(t *testing.T) {
	input :=
		`(define (double x) ; doubles a number
    (* 2 x))
(double 21)
'(1 2.5 true)
[+ xs...]
"two words"`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{token.LPAREN, "(", 1},
		{token.ATOM, "define", 1},
		{token.LPAREN, "(", 1},
		{token.ATOM, "double", 1},
		{token.ATOM, "x", 1},
		{token.RPAREN, ")", 1},
		{token.COMMENT, " doubles a number", 1},
		{token.LPAREN, "(", 2},
		{token.ATOM, "*", 2},
		{token.ATOM, "2", 2},
		{token.ATOM, "x", 2},
		{token.RPAREN, ")", 2},
		{token.RPAREN, ")", 2},
		{token.LPAREN, "(", 3},
		{token.ATOM, "double", 3},
		{token.ATOM, "21", 3},
		{token.RPAREN, ")", 3},
		{token.QUOTE, "'", 4},
		{token.LPAREN, "(", 4},
		{token.ATOM, "1", 4},
		{token.ATOM, "2.5", 4},
		{token.ATOM, "true", 4},
		{token.RPAREN, ")", 4},
		{token.LBRACK, "[", 5},
		{token.ATOM, "+", 5},
		{token.ATOM, "xs...", 5},
		{token.RBRACK, "]", 5},
		{token.STRING, "two words", 6},
		{token.EOF, "EOF", 6},
	}

	l := New("dummy source", input)

	for i, tt := range tests {

		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}

		if tok.Line != tt.expectedLine {
			t.Fatalf("tests[%d] - line wrong. expected=%d, got=%d",
				i, tt.expectedLine, tok.Line)
		}
	}
}

// Similar, but exercising the things that should go wrong or almost wrong.
func TestNextToken2(t *testing.T) {
	input := `"strings
may span lines" (λ"unclosed`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.STRING, "strings\nmay span lines"},
		{token.LPAREN, "("},
		{token.ATOM, "λ"},
		{token.ILLEGAL, "parse/eof/string"},
		{token.EOF, "EOF"},
	}

	l := New("dummy source", input)

	for i, tt := range tests {

		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}

	if len(l.Ers) != 1 {
		t.Fatalf("expected 1 lex error, got %d", len(l.Ers))
	}

	if l.Ers[0].ErrorId != "parse/eof/string" {
		t.Fatalf("error id wrong. expected=%q, got=%q", "parse/eof/string", l.Ers[0].ErrorId)
	}
}
