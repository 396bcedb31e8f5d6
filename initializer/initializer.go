package initializer

import (
	"math"
	"os"

	"github.com/tim-hardcastle/Remora/evaluator"
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/parser"
	"github.com/tim-hardcastle/Remora/text"
	"github.com/tim-hardcastle/Remora/token"
)

// The initializer stocks the base scope of a fresh environment with
// everything a Remora program is born knowing: a handful of constants, the
// six special forms, and the intrinsic functions defined in functions.go.

// None of these bindings is privileged. They sit in the outermost scope like
// anything the user defines, and code that shadows or clobbers them gets
// exactly what it asked for.

// NewEnvironment returns an environment with the base scope populated,
// ready to evaluate code.
func NewEnvironment() *object.Environment {
	env := object.NewEnvironment()

	// Constants.

	env.Define("empty", object.EMPTY)
	env.Define("math/infinity", &object.Number{Value: math.Inf(1)})
	env.Define("math/-infinity", &object.Number{Value: math.Inf(-1)})
	env.Define("math/pi", &object.Number{Value: math.Pi})
	env.Define("math/e", &object.Number{Value: math.E})
	env.Define("env/lisp-version", &object.String{Value: text.VERSION})
	env.Define("env/lisp-name", &object.String{Value: text.NAME})

	// Special forms.

	DefineForm(env, "define", evaluator.DefineForm)
	DefineForm(env, "lambda", evaluator.LambdaForm)
	DefineForm(env, "if", evaluator.IfForm)
	DefineForm(env, "cond", evaluator.CondForm)
	DefineForm(env, "let", evaluator.LetForm)
	DefineForm(env, "define-struct", evaluator.DefineStructForm)

	// Numeric functions.

	DefineIntrinsic(env, "+", add)
	DefineIntrinsic(env, "-", subtract)
	DefineIntrinsic(env, "*", multiply)
	DefineIntrinsic(env, "/", divide)
	DefineIntrinsic(env, "modulo", modulo)
	DefineIntrinsic(env, "sqrt", sqrt)
	DefineIntrinsic(env, "pow", pow)
	DefineIntrinsic(env, "log", naturalLog)
	DefineIntrinsic(env, "fibonacci", fibonacci)

	// Type checks.

	loadChecks(env)

	// List functions.

	DefineIntrinsic(env, "list", makeList)
	DefineIntrinsic(env, "cons", cons)
	DefineIntrinsic(env, "car", car)
	DefineIntrinsic(env, "cdr", cdr)
	DefineIntrinsic(env, "len", listLength)
	DefineIntrinsic(env, "nth", nth)
	DefineIntrinsic(env, "append", appendLists)

	// Comparisons.

	DefineIntrinsic(env, "<", makeComparison(func(a, b float64) bool { return a < b }))
	DefineIntrinsic(env, "<=", makeComparison(func(a, b float64) bool { return a <= b }))
	DefineIntrinsic(env, ">", makeComparison(func(a, b float64) bool { return a > b }))
	DefineIntrinsic(env, ">=", makeComparison(func(a, b float64) bool { return a >= b }))
	DefineIntrinsic(env, "eq?", isEqual)

	// Logic.

	DefineIntrinsic(env, "or", or)
	DefineIntrinsic(env, "and", and)
	DefineIntrinsic(env, "not", not)

	// Control and I/O.

	DefineIntrinsic(env, "exit", exit)
	DefineIntrinsic(env, "begin", begin)
	DefineIntrinsic(env, "print", makePrinter(""))
	DefineIntrinsic(env, "println", makePrinter("\n"))
	DefineIntrinsic(env, "apply", apply)
	DefineIntrinsic(env, "concat", concat)
	DefineIntrinsic(env, "eval", eval)

	DefineIntrinsic(env, "format", format)
	DefineIntrinsic(env, "read-line", readLine)
	DefineIntrinsic(env, "parse", parse)

	DefineIntrinsic(env, "import", importFile)
	DefineIntrinsic(env, "read-file", readFile)
	DefineIntrinsic(env, "write-file", writeFile)

	// Database access.

	DefineIntrinsic(env, "sql/query", sqlQuery)
	DefineIntrinsic(env, "sql/exec", sqlExec)

	// Trigonometry.

	loadTrigFns(env)

	return env
}

// DefineIntrinsic binds a Go function as a named function in the current
// scope.
func DefineIntrinsic(env *object.Environment, name string, fn object.IntrinsicFn) {
	env.Define(name, &object.Intrinsic{Fn: fn})
}

// DefineForm binds a Go function as a named special form in the current
// scope.
func DefineForm(env *object.Environment, name string, fn object.FormFn) {
	env.Define(name, &object.SpecialForm{Fn: fn})
}

// ImportFile reads a source file and evaluates everything in it at the top
// level of the given environment, stopping at the first error. The `import`
// intrinsic and the hub both come through here.
func ImportFile(fname string, env *object.Environment) *object.Error {
	source, err := os.ReadFile(fname)
	if err != nil {
		return object.CreateErr("host/file/import", fileToken(fname), err.Error())
	}
	p := parser.New()
	exprs := p.ParseLine(fname, string(source))
	if p.ErrorsExist() {
		return p.Errors[0]
	}
	for _, expr := range exprs {
		result := evaluator.Eval(expr, env)
		if result.Type() == object.ERROR_OBJ {
			return result.(*object.Error)
		}
	}
	return nil
}

// A token to hang an error on when a file can't be read at all, and so
// there is no position in it to point to.
func fileToken(fname string) token.Token {
	return token.Token{Type: token.EOF, Literal: fname, Line: 1, Source: fname}
}
