package parser_test

import (
	"testing"

	"github.com/tim-hardcastle/Remora/parser"
)

func TestParser(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`42`, `42`},
		{`-2.5`, `-2.5`},
		{`5.`, `5`},
		{`foo`, `foo`},
		{`λ`, `λ`},
		{`true`, `true`},
		{`#t`, `true`},
		{`#f`, `false`},
		{`"two words"`, `"two words"`},
		{`xs...`, `xs...`},
		{`()`, `()`},
		{`(+ 1 2)`, `(+ 1 2)`},
		{`[+ 1 2]`, `(+ 1 2)`},
		{`(* (+ 1 2) 3)`, `(* (+ 1 2) 3)`},
		{`'x`, `'x`},
		{`''x`, `''x`},
		{`'(1 2)`, `'(1 2)`},
		{`(lambda (x) x)`, `(lambda (x) x)`},
		{`(define (f x) (* x x)) (f 3)`, `(define (f x) (* x x)) (f 3)`},
		{`(cond [(> x 0) "pos"] [else "neg"])`, `(cond ((> x 0) "pos") (else "neg"))`},
		{`(+ 1 2) ; and a comment`, `(+ 1 2)`},
	}
	for i, tt := range tests {
		p := parser.New()
		exprs := p.ParseLine("test", tt.input)
		if p.ErrorsExist() {
			t.Fatalf("tests[%d] - unexpected error: %s", i, p.Errors[0].ErrorId)
		}
		got := ""
		for j, expr := range exprs {
			if j > 0 {
				got = got + " "
			}
			got = got + expr.String()
		}
		if got != tt.want {
			t.Fatalf("tests[%d] - parse wrong. expected=%q, got=%q", i, tt.want, got)
		}
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`(1 2`, `parse/eof/list`},
		{`)`, `parse/close`},
		{`(]`, `parse/close`},
		{`'`, `parse/eof/quote`},
		{`...`, `parse/atom/empty`},
		{`a@b`, `parse/atom/bad`},
		{`"unclosed`, `parse/eof/string`},
	}
	for i, tt := range tests {
		p := parser.New()
		p.ParseLine("test", tt.input)
		if !p.ErrorsExist() {
			t.Fatalf("tests[%d] - unexpected successful parsing", i)
		}
		if p.Errors[0].ErrorId != tt.want {
			t.Fatalf("tests[%d] - error wrong. expected=%q, got=%q", i, tt.want, p.Errors[0].ErrorId)
		}
	}
}
