package object

import (
	"github.com/tim-hardcastle/Remora/signature"
	"github.com/tim-hardcastle/Remora/stack"
)

// The environment is a base scope, a stack of scopes above it (innermost
// last), and the struct registry. The evaluator owns the pairing of
// EnterScope and ExitScope: every scope it enters must be exited exactly
// once, on success and on failure alike, or lookups drift outward forever.
//
// Note that lookups are dynamic. A lambda body evaluated here sees whatever
// the current call chain has defined, not what was visible where the lambda
// was written. Shadowing a library function and then calling something that
// uses it will therefore behave differently than in a lexically-scoped
// Lisp.

type Scope = map[string]Object

type Environment struct {
	base    Scope
	scopes  *stack.Stack[Scope]
	structs map[string]signature.StructSig
}

func NewEnvironment() *Environment {
	env := &Environment{
		base:    Scope{},
		scopes:  stack.NewStack[Scope](),
		structs: make(map[string]signature.StructSig),
	}
	env.EnterScope() // the global scope
	return env
}

func (env *Environment) EnterScope() {
	env.scopes.Push(Scope{})
}

func (env *Environment) ExitScope() {
	if _, ok := env.scopes.Pop(); !ok {
		panic("evaluator error: exited more scopes than it entered")
	}
}

// Depth reports how many scopes are on the stack, so that callers can
// check the enter/exit pairing held across an evaluation.
func (env *Environment) Depth() int {
	return env.scopes.Len()
}

// Define binds in the innermost scope only, overwriting any binding of the
// same name there. Outer bindings of the name are shadowed, not changed.
func (env *Environment) Define(name string, val Object) {
	if scope, ok := env.scopes.HeadValue(); ok {
		scope[name] = val
		return
	}
	env.base[name] = val
}

// Get searches from the innermost scope outwards and then the base scope.
func (env *Environment) Get(name string) (Object, bool) {
	for i := 0; i < env.scopes.Len(); i++ {
		scope, _ := env.scopes.FromTop(i)
		if val, ok := scope[name]; ok {
			return val, true
		}
	}
	if val, ok := env.base[name]; ok {
		return val, true
	}
	return nil, false
}

// GetSuper is Get starting one scope further out, skipping exactly the
// innermost scope. With a single scope on the stack it falls through to
// the base scope. It serves the "#super:" identifier prefix, which lets a
// binding reach a same-named binding it is shadowing.
func (env *Environment) GetSuper(name string) (Object, bool) {
	for i := 1; i < env.scopes.Len(); i++ {
		scope, _ := env.scopes.FromTop(i)
		if val, ok := scope[name]; ok {
			return val, true
		}
	}
	if val, ok := env.base[name]; ok {
		return val, true
	}
	return nil, false
}

// The struct registry is append-only: a struct type, once declared, stays
// for the life of the environment. Redeclaring a name replaces its fields
// and its generated handlers but never removes it.

func (env *Environment) AddStruct(name string, sig signature.StructSig) {
	env.structs[name] = sig
}

func (env *Environment) GetStruct(name string) (signature.StructSig, bool) {
	sig, ok := env.structs[name]
	return sig, ok
}
