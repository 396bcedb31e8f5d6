package object_test

import (
	"testing"

	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/signature"
)

func TestScopes(t *testing.T) {
	env := object.NewEnvironment()
	if env.Depth() != 1 {
		t.Fatalf("fresh environment depth wrong. expected=%d, got=%d", 1, env.Depth())
	}
	env.Define("x", &object.Number{Value: 1})
	env.Define("y", &object.Number{Value: 10})

	env.EnterScope()
	env.Define("x", &object.Number{Value: 2})
	if env.Depth() != 2 {
		t.Fatalf("depth after entering wrong. expected=%d, got=%d", 2, env.Depth())
	}

	got, ok := env.Get("x")
	if !ok || got.(*object.Number).Value != 2 {
		t.Fatalf("inner lookup wrong. expected=2, got=%v", got)
	}
	got, ok = env.Get("y")
	if !ok || got.(*object.Number).Value != 10 {
		t.Fatalf("outer lookup wrong. expected=10, got=%v", got)
	}
	got, ok = env.GetSuper("x")
	if !ok || got.(*object.Number).Value != 1 {
		t.Fatalf("super lookup wrong. expected=1, got=%v", got)
	}
	if _, ok = env.Get("z"); ok {
		t.Fatalf("lookup of the unbound succeeded")
	}

	env.ExitScope()
	got, ok = env.Get("x")
	if !ok || got.(*object.Number).Value != 1 {
		t.Fatalf("shadowing outlived its scope. expected=1, got=%v", got)
	}
	if _, ok = env.GetSuper("x"); ok {
		t.Fatalf("super lookup at the top found something")
	}
}

func TestDefineOverwrites(t *testing.T) {
	env := object.NewEnvironment()
	env.Define("x", &object.Number{Value: 1})
	env.Define("x", &object.Number{Value: 2})
	got, _ := env.Get("x")
	if got.(*object.Number).Value != 2 {
		t.Fatalf("redefinition in the same scope didn't overwrite. got=%v", got)
	}
}

func TestStructRegistry(t *testing.T) {
	env := object.NewEnvironment()
	env.AddStruct("point", signature.StructSig{"x", "y"})

	sig, ok := env.GetStruct("point")
	if !ok {
		t.Fatalf("registered struct not found")
	}
	if sig.Arity() != 2 {
		t.Fatalf("arity wrong. expected=%d, got=%d", 2, sig.Arity())
	}
	if sig.Index("y") != 1 {
		t.Fatalf("field index wrong. expected=%d, got=%d", 1, sig.Index("y"))
	}
	if sig.Index("z") != -1 {
		t.Fatalf("missing field index wrong. expected=%d, got=%d", -1, sig.Index("z"))
	}

	// Redeclaring replaces the signature but the name stays registered.
	env.AddStruct("point", signature.StructSig{"x"})
	sig, ok = env.GetStruct("point")
	if !ok || sig.Arity() != 1 {
		t.Fatalf("redeclared struct wrong. got arity=%d", sig.Arity())
	}

	if _, ok := env.GetStruct("nope"); ok {
		t.Fatalf("unregistered struct found")
	}

	// The registry ignores scope: a struct declared in an inner scope is
	// still there when the scope is gone.
	env.EnterScope()
	env.AddStruct("inner", signature.StructSig{"a"})
	env.ExitScope()
	if _, ok := env.GetStruct("inner"); !ok {
		t.Fatalf("struct declared in an inner scope was lost")
	}
}
