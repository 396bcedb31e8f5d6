package object_test

import (
	"strings"
	"testing"

	"github.com/tim-hardcastle/Remora/ast"
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/text"
	"github.com/tim-hardcastle/Remora/token"
)

func TestInspect(t *testing.T) {
	list := object.ListFromSlice([]object.Object{
		&object.Number{Value: 1},
		&object.String{Value: "two"},
		object.TRUE,
	})
	point := &object.StructInstance{Name: "point", Fields: []object.Object{
		&object.Number{Value: 1},
		&object.Number{Value: 2},
	}}
	lambda := &object.Lambda{Params: []string{"x"}, Body: &ast.Identifier{Value: "x"}}
	tests := []struct {
		obj         object.Object
		wantPlain   string
		wantLiteral string
	}{
		{&object.Number{Value: 42}, `42`, `42`},
		{&object.Number{Value: 2.5}, `2.5`, `2.5`},
		{&object.Number{Value: -0.125}, `-0.125`, `-0.125`},
		{object.TRUE, `true`, `true`},
		{object.FALSE, `false`, `false`},
		{&object.String{Value: "hi"}, `hi`, `"hi"`},
		{&object.String{Value: "a\nb"}, "a\nb", `"a\nb"`},
		{&object.Symbol{Value: "x"}, `x`, `x`},
		{&object.Symbol{Value: "xs", Variadic: true}, `xs...`, `xs...`},
		{object.EMPTY, `()`, `()`},
		{list, `(1 two true)`, `(1 "two" true)`},
		{point, `(make-point 1 2)`, `(make-point 1 2)`},
		{lambda, `(lambda (x) x)`, `(lambda (x) x)`},
		{&object.Intrinsic{}, `<function>`, `<function>`},
		{&object.SpecialForm{}, `<procedure>`, `<procedure>`},
	}
	for i, tt := range tests {
		if got := tt.obj.Inspect(object.ViewStdOut); got != tt.wantPlain {
			t.Fatalf("tests[%d] - plain view wrong. expected=%q, got=%q", i, tt.wantPlain, got)
		}
		if got := tt.obj.Inspect(object.ViewLiteral); got != tt.wantLiteral {
			t.Fatalf("tests[%d] - literal view wrong. expected=%q, got=%q", i, tt.wantLiteral, got)
		}
	}
}

func TestEquals(t *testing.T) {
	listOf := func(elements ...object.Object) *object.List {
		return object.ListFromSlice(elements)
	}
	one := &object.Number{Value: 1}
	two := &object.Number{Value: 2}
	tests := []struct {
		left  object.Object
		right object.Object
		want  bool
	}{
		{one, &object.Number{Value: 1}, true},
		{one, two, false},
		{&object.String{Value: "a"}, &object.String{Value: "a"}, true},
		{&object.String{Value: "a"}, &object.String{Value: "b"}, false},
		{object.TRUE, object.MakeBool(true), true},
		{object.TRUE, object.FALSE, false},
		{&object.Symbol{Value: "x"}, &object.Symbol{Value: "x"}, true},
		{&object.Symbol{Value: "x"}, &object.Symbol{Value: "x", Variadic: true}, false},
		{one, &object.String{Value: "1"}, false},
		{object.EMPTY, object.EMPTY, true},
		{listOf(one, two), listOf(one, two), true},
		{listOf(one, two), listOf(two, one), false},
		{listOf(one), listOf(one, one), false},
		{listOf(one, listOf(two)), listOf(one, listOf(two)), true},
		{&object.StructInstance{Name: "p", Fields: []object.Object{one}},
			&object.StructInstance{Name: "p", Fields: []object.Object{one}}, true},
		{&object.StructInstance{Name: "p", Fields: []object.Object{one}},
			&object.StructInstance{Name: "q", Fields: []object.Object{one}}, false},
		{&object.Intrinsic{}, &object.Intrinsic{}, false},
		{&object.SpecialForm{}, &object.SpecialForm{}, false},
	}
	for i, tt := range tests {
		if got := object.Equals(tt.left, tt.right); got != tt.want {
			t.Fatalf("tests[%d] - equality wrong. expected=%v, got=%v", i, tt.want, got)
		}
	}
}

// An error with an empty trace was found before anything ran; one with
// entries in its trace happened at runtime, and says so.
func TestErrorDisplay(t *testing.T) {
	tok := token.Token{Type: token.ATOM, Literal: "nope", Line: 1, ChStart: 0, ChEnd: 4, Source: "REPL input"}
	err := object.CreateErr("eval/unbound", tok, "nope")
	if err.Message == "" {
		t.Fatalf("message not created")
	}
	plain := err.Inspect(object.ViewStdOut)
	if !strings.HasPrefix(plain, text.ERROR) {
		t.Fatalf("static error prefix wrong, got=%q", plain)
	}
	if !strings.Contains(plain, text.PosDescription(tok)) {
		t.Fatalf("error position missing, got=%q", plain)
	}
	if !strings.HasSuffix(plain, ".") {
		t.Fatalf("error not a sentence, got=%q", plain)
	}
	err.Trace = append(err.Trace, tok)
	if !strings.HasPrefix(err.Inspect(object.ViewStdOut), text.RT_ERROR) {
		t.Fatalf("runtime error prefix wrong, got=%q", err.Inspect(object.ViewStdOut))
	}
	literal := err.Inspect(object.ViewLiteral)
	if !strings.HasPrefix(literal, `error "`) {
		t.Fatalf("literal view wrong, got=%q", literal)
	}
}

func TestErrorList(t *testing.T) {
	tok := token.Token{Source: "test", Line: 1}
	errors := object.Errors{
		object.CreateErr("eval/unbound", tok, "foo"),
		object.CreateErr("eval/unbound", tok, "bar"),
	}
	list := object.GetList(errors)
	if !strings.Contains(list, "[0] ") || !strings.Contains(list, "[1] ") {
		t.Fatalf("errors not numbered, got=%q", list)
	}
	if object.GetExplanation(errors, 2) != "There is no error with that number." {
		t.Fatalf("out-of-range explanation wrong, got=%q", object.GetExplanation(errors, 2))
	}
	if object.GetExplanation(errors, 0) == "" {
		t.Fatalf("no explanation for a real error")
	}
}
