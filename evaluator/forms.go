package evaluator

import (
	"strings"

	"github.com/tim-hardcastle/Remora/ast"
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/set"
	"github.com/tim-hardcastle/Remora/signature"
	"github.com/tim-hardcastle/Remora/token"
)

// The words that give the language its structure and so may not be
// redefined.
var reservedWords = set.MakeFromSlice([]string{
	"define", "define-struct", "begin", "cond", "else", "if", "let",
})

// DefineForm is `(define name value)`, or the function shorthand
// `(define (name params ...) body ...)`, which rewrites itself into a
// define of a lambda and evaluates that instead.
func DefineForm(env *object.Environment, tok token.Token, exprs []ast.SExpr) object.Object {
	if len(exprs) <= 2 {
		return newError("form/define/arity", tok, 2, len(exprs)-1)
	}
	switch ident := exprs[1].(type) {

	case *ast.Identifier:
		if len(exprs) != 3 {
			return newError("form/define/extra", tok, 2, len(exprs)-1)
		}
		if reservedWords.Contains(ident.Value) {
			return newError("form/define/reserved", ident.Token, ident.Value)
		}
		val := Eval(exprs[2], env)
		if isError(val) {
			return val
		}
		env.Define(ident.Value, val)
		return object.EMPTY

	case *ast.List:
		if len(ident.Elements) == 0 {
			return newError("form/define/empty", ident.Token)
		}
		name := ident.Elements[0]
		params := ident.Elements[1:]
		var body ast.SExpr
		if len(exprs) > 3 {
			beginCall := []ast.SExpr{&ast.Identifier{Token: tok, Value: "begin"}}
			beginCall = append(beginCall, exprs[2:]...)
			body = &ast.List{Token: tok, Elements: beginCall}
		} else {
			body = exprs[2]
		}
		rewritten := &ast.List{Token: tok, Elements: []ast.SExpr{
			&ast.Identifier{Token: tok, Value: "define"},
			name,
			&ast.List{Token: tok, Elements: []ast.SExpr{
				&ast.Identifier{Token: tok, Value: "lambda"},
				&ast.List{Token: ident.Token, Elements: params},
				body,
			}},
		}}
		return Eval(rewritten, env)
	}
	return newError("form/define/ident", exprs[1].GetToken(), exprs[1].String())
}

// LambdaForm is `(lambda (params ...) body)`. The body is captured raw: it
// isn't evaluated until the lambda is applied, and then against the
// caller's scopes.
func LambdaForm(env *object.Environment, tok token.Token, exprs []ast.SExpr) object.Object {
	if len(exprs) != 3 {
		return newError("form/lambda/arity", tok, 2, len(exprs)-1)
	}
	paramList, ok := exprs[1].(*ast.List)
	if !ok {
		return newError("form/lambda/list", exprs[1].GetToken(), exprs[1].String())
	}
	names := make([]string, 0, len(paramList.Elements))
	variadic := false
	for i, param := range paramList.Elements {
		ident, ok := param.(*ast.Identifier)
		if !ok {
			return newError("form/lambda/param", param.GetToken(), param.String())
		}
		if ident.Variadic && i != len(paramList.Elements)-1 {
			return newError("form/lambda/variadic", ident.Token)
		}
		names = append(names, ident.Value)
		if i == len(paramList.Elements)-1 {
			variadic = ident.Variadic
		}
	}
	return &object.Lambda{Params: names, Body: exprs[2], Variadic: variadic}
}

func IfForm(env *object.Environment, tok token.Token, exprs []ast.SExpr) object.Object {
	if len(exprs) != 4 {
		return newError("form/if/arity", tok, 3, len(exprs)-1)
	}
	condition := Eval(exprs[1], env)
	if isError(condition) {
		return condition
	}
	conditionBool, ok := condition.(*object.Boolean)
	if !ok {
		// The error names the condition as written, not what it came to.
		return newError("form/if/bool", exprs[1].GetToken(), exprs[1].String())
	}
	if conditionBool.Value {
		return Eval(exprs[2], env)
	}
	return Eval(exprs[3], env)
}

// CondForm steps through `(test result)` clauses in a scope of its own, in
// which `else` is bound to true. The winning clause's result is evaluated
// after that scope has been exited, so bindings made while testing don't
// leak into the result.
func CondForm(env *object.Environment, tok token.Token, exprs []ast.SExpr) object.Object {
	env.EnterScope()
	env.Define("else", object.TRUE)
	for _, clause := range exprs[1:] {
		clauseList, ok := clause.(*ast.List)
		if !ok {
			env.ExitScope()
			return newError("form/cond/clause", clause.GetToken(), clause.String())
		}
		if len(clauseList.Elements) != 2 {
			env.ExitScope()
			return newError("form/cond/arity", clauseList.Token, 2, len(clauseList.Elements))
		}
		test := Eval(clauseList.Elements[0], env)
		if isError(test) {
			env.ExitScope()
			return test
		}
		testBool, ok := test.(*object.Boolean)
		if !ok {
			env.ExitScope()
			return newError("form/cond/bool", clauseList.Elements[0].GetToken(), test.Inspect(object.ViewStdOut))
		}
		if testBool.Value {
			env.ExitScope()
			return Eval(clauseList.Elements[1], env)
		}
	}
	env.ExitScope()
	return object.EMPTY
}

// LetForm is `(let ((name value) ...) body)`. The bindings evaluate left
// to right in the fresh scope, so each can see the ones before it.
func LetForm(env *object.Environment, tok token.Token, exprs []ast.SExpr) object.Object {
	if len(exprs)-1 != 2 {
		return newError("form/let/arity", tok, 2, len(exprs)-1)
	}
	bindings, ok := exprs[1].(*ast.List)
	if !ok {
		return newError("form/let/bindings", exprs[1].GetToken(), exprs[1].String())
	}
	env.EnterScope()
	defer env.ExitScope()
	for _, binding := range bindings.Elements {
		pair, ok := binding.(*ast.List)
		if !ok {
			return newError("form/let/binding", binding.GetToken(), binding.String())
		}
		if len(pair.Elements) != 2 {
			return newError("form/let/pair", pair.Token, 2, len(pair.Elements))
		}
		ident, ok := pair.Elements[0].(*ast.Identifier)
		if !ok {
			return newError("form/let/ident", pair.Elements[0].GetToken(), pair.Elements[0].String())
		}
		val := Eval(pair.Elements[1], env)
		if isError(val) {
			return val
		}
		env.Define(ident.Value, val)
	}
	return Eval(exprs[2], env)
}

// DefineStructForm is `(define-struct Name (fields ...))`. It records the
// field order in the registry and installs the predicate, the accessors,
// and the constructor as special forms in the current scope. The handlers
// hold no state of their own: each re-derives its struct type from the
// name it is called through and consults the registry afresh, so they
// survive being rebound or shadowed the same way any other value does.
func DefineStructForm(env *object.Environment, tok token.Token, exprs []ast.SExpr) object.Object {
	if len(exprs)-1 != 2 {
		return newError("form/struct/arity", tok, 2, len(exprs)-1)
	}
	name, ok := exprs[1].(*ast.Identifier)
	if !ok {
		return newError("form/struct/name", exprs[1].GetToken(), exprs[1].String())
	}
	fieldList, ok := exprs[2].(*ast.List)
	if !ok {
		return newError("form/struct/fields", exprs[2].GetToken(), exprs[2].String())
	}
	if len(fieldList.Elements) == 0 {
		return newError("form/struct/empty", fieldList.Token, 1, 0)
	}
	fields := make(signature.StructSig, 0, len(fieldList.Elements))
	for _, field := range fieldList.Elements {
		ident, ok := field.(*ast.Identifier)
		if !ok {
			return newError("form/struct/field", field.GetToken(), field.String())
		}
		fields = append(fields, ident.Value)
	}
	env.AddStruct(name.Value, fields)
	env.Define(name.Value+"?", &object.SpecialForm{Fn: structPredicate})
	for _, field := range fields {
		env.Define(name.Value+"-"+field, &object.SpecialForm{Fn: structAccessor})
	}
	env.Define("make-"+name.Value, &object.SpecialForm{Fn: structConstructor})
	return object.EMPTY
}

// The struct type a predicate tests for is its own callee name minus the
// final character. Anything that frustrates the derivation just means the
// answer is false.
func structPredicate(env *object.Environment, tok token.Token, exprs []ast.SExpr) object.Object {
	if len(exprs) != 2 {
		return newError("struct/pred/arity", tok, 1, len(exprs)-1)
	}
	callee, ok := exprs[0].(*ast.Identifier)
	if !ok {
		return object.FALSE
	}
	runes := []rune(callee.Value)
	structName := string(runes[:len(runes)-1])
	value := Eval(exprs[1], env)
	if isError(value) {
		return value
	}
	instance, ok := value.(*object.StructInstance)
	if !ok {
		return object.FALSE
	}
	return object.MakeBool(instance.Name == structName)
}

func structAccessor(env *object.Environment, tok token.Token, exprs []ast.SExpr) object.Object {
	if len(exprs)-1 != 1 {
		return newError("struct/access/arity", tok, 1, len(exprs)-1)
	}
	callee, ok := exprs[0].(*ast.Identifier)
	if !ok {
		return newError("struct/access/ident", exprs[0].GetToken(), exprs[0].String())
	}
	hyphen := strings.LastIndex(callee.Value, "-")
	if hyphen < 0 {
		return newError("struct/access/accessor", callee.Token, callee.Value)
	}
	structName := callee.Value[:hyphen]
	fieldName := callee.Value[hyphen+1:]
	value := Eval(exprs[1], env)
	if isError(value) {
		return value
	}
	instance, ok := value.(*object.StructInstance)
	if !ok {
		return newError("struct/access/struct", exprs[1].GetToken(), value.Inspect(object.ViewStdOut))
	}
	sig, ok := env.GetStruct(structName)
	if !ok {
		return newError("struct/access/type", callee.Token, structName)
	}
	index := sig.Index(fieldName)
	if index < 0 {
		return newError("struct/access/field/a", callee.Token, structName, fieldName)
	}
	// The instance isn't required to be of the derived type, only to be
	// deep enough to index.
	if index >= len(instance.Fields) {
		return newError("struct/access/field/b", exprs[1].GetToken(), value.Inspect(object.ViewStdOut), fieldName)
	}
	return instance.Fields[index]
}

func structConstructor(env *object.Environment, tok token.Token, exprs []ast.SExpr) object.Object {
	callee, ok := exprs[0].(*ast.Identifier)
	if !ok {
		return newError("struct/make/ident", exprs[0].GetToken(), exprs[0].String())
	}
	structName, ok := strings.CutPrefix(callee.Value, "make-")
	if !ok {
		return newError("struct/make/prefix", callee.Token, callee.Value)
	}
	sig, ok := env.GetStruct(structName)
	if !ok {
		return newError("struct/make/type", callee.Token, structName)
	}
	if len(exprs)-1 != sig.Arity() {
		return newError("struct/make/arity", tok, sig.Arity(), len(exprs)-1)
	}
	fields, err := evalArgs(exprs[1:], env)
	if err != nil {
		err.Trace = append(err.Trace, tok)
		return err
	}
	return &object.StructInstance{Name: structName, Fields: fields}
}
