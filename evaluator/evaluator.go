package evaluator

// This is basically your standard tree-walking evaluator, with one or two
// minor peculiarities. The first is that a list is the only compound
// expression there is, so the whole of evaluation is: atoms evaluate to
// themselves or to what they're bound to, and a list applies its head to
// its tail. The second is that what the head means is decided entirely at
// runtime: it may turn out to be a lambda, an intrinsic, or a special form,
// and in the last case the form gets the raw expressions, callee included,
// and takes over from there.

import (
	"strings"

	"github.com/tim-hardcastle/Remora/ast"
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/token"
)

// An identifier with this prefix is looked up starting one scope further
// out than usual, so that a recursive helper can reach the binding it is
// shadowing.
const superPrefix = "#super:"

func Eval(node ast.SExpr, env *object.Environment) object.Object {

	switch node := node.(type) {

	case *ast.Number:
		return &object.Number{Value: node.Value}

	case *ast.Boolean:
		return object.MakeBool(node.Value)

	case *ast.String:
		return &object.String{Value: node.Value}

	case *ast.Identifier:
		return evalIdentifier(node, env)

	case *ast.Quoted:
		return object.FromExpr(node.Expr)

	case *ast.Nil:
		return object.EMPTY

	case *ast.List:
		return evalList(node, env)
	}

	return newError("eval/node", node.GetToken(), node.String())
}

func evalIdentifier(node *ast.Identifier, env *object.Environment) object.Object {
	name := node.Value
	if strings.HasPrefix(name, superPrefix) {
		name = name[len(superPrefix):]
		if val, ok := env.GetSuper(name); ok {
			return val
		}
		return newError("eval/unbound", node.Token, name)
	}
	if val, ok := env.Get(name); ok {
		return val
	}
	return newError("eval/unbound", node.Token, name)
}

func evalList(node *ast.List, env *object.Environment) object.Object {
	if len(node.Elements) == 0 {
		return object.EMPTY
	}

	callee := Eval(node.Elements[0], env)
	if isError(callee) {
		callee.(*object.Error).Trace = append(callee.(*object.Error).Trace, node.GetToken())
		return callee
	}

	switch callee := callee.(type) {

	case *object.SpecialForm:
		return callee.Fn(env, node.GetToken(), node.Elements)

	case *object.Lambda:
		args, err := evalArgs(node.Elements[1:], env)
		if err != nil {
			err.Trace = append(err.Trace, node.GetToken())
			return err
		}
		return Apply(callee, args, env, node.GetToken())

	case *object.Intrinsic:
		args, err := evalArgs(node.Elements[1:], env)
		if err != nil {
			err.Trace = append(err.Trace, node.GetToken())
			return err
		}
		result := callee.Fn(env, args)
		if isError(result) {
			result.(*object.Error).Trace = append(result.(*object.Error).Trace, node.GetToken())
			// Intrinsics don't know where they were called from, so they
			// return their errors blank and we fill them in here.
			if result.(*object.Error).Message == "" {
				msgCreate, ok := object.ErrorCreatorMap[result.(*object.Error).ErrorId]
				if !ok {
					result.(*object.Error).Message = "Oopsie, can't find errorId " + result.(*object.Error).ErrorId
				} else {
					result.(*object.Error).Message = msgCreate.
						Message(node.GetToken(), result.(*object.Error).Info...)
				}
			}
			// An error that came back through a re-entrant intrinsic such
			// as apply or eval can be filled but placeless; it gets the
			// call site too.
			if result.(*object.Error).Token.Source == "" {
				result.(*object.Error).Token = node.GetToken()
			}
		}
		return result
	}

	return newError("eval/notfn", node.GetToken(), callee.Inspect(object.ViewStdOut))
}

// Arguments evaluate strictly left to right and the first error wins.
func evalArgs(exprs []ast.SExpr, env *object.Environment) ([]object.Object, *object.Error) {
	args := make([]object.Object, 0, len(exprs))
	for _, expr := range exprs {
		arg := Eval(expr, env)
		if isError(arg) {
			return nil, arg.(*object.Error)
		}
		args = append(args, arg)
	}
	return args, nil
}

// Apply calls a lambda on already-evaluated arguments. The parameters go
// into a fresh scope, which is popped again however the body exits; as
// this is all the scoping a lambda has, whatever else the body refers to
// is found in the scopes live at the call site.
func Apply(lambda *object.Lambda, args []object.Object, env *object.Environment, tok token.Token) object.Object {
	if lambda.Variadic {
		fixed := len(lambda.Params) - 1
		if len(args) < fixed {
			return newError("apply/arity/least", tok, fixed, len(args))
		}
		env.EnterScope()
		defer env.ExitScope()
		for i := 0; i < fixed; i++ {
			env.Define(lambda.Params[i], args[i])
		}
		env.Define(lambda.Params[fixed], object.ListFromSlice(args[fixed:]))
		return Eval(lambda.Body, env)
	}

	if len(args) != len(lambda.Params) {
		return newError("apply/arity", tok, len(lambda.Params), len(args))
	}
	env.EnterScope()
	defer env.ExitScope()
	for i, param := range lambda.Params {
		env.Define(param, args[i])
	}
	return Eval(lambda.Body, env)
}

func newError(ident string, token token.Token, args ...any) *object.Error {
	return object.CreateErr(ident, token, args...)
}

func isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}
