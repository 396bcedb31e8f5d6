package initializer

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	"src.elv.sh/pkg/persistent/vector"

	"github.com/tim-hardcastle/Remora/database"
	"github.com/tim-hardcastle/Remora/evaluator"
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/parser"
	"github.com/tim-hardcastle/Remora/token"
)

// The intrinsic functions. Each one gets its arguments already evaluated
// and returns either a value or an error. The errors are made with BlankErr
// and so have no message and no position: an intrinsic doesn't know where
// it was called from, and the evaluator fills the blanks in at the call
// site.

// Shared argument plumbing. Keeping each check in one place keeps each
// error id thrown from one place.

func checkArity(args []object.Object, want int) *object.Error {
	if len(args) != want {
		return object.BlankErr("lib/arity", want, len(args))
	}
	return nil
}

func tooFewArgs(want, got int) *object.Error {
	return object.BlankErr("lib/arity/least", want, got)
}

// numbers unwraps every argument, or names the first one that isn't a num.
func numbers(args []object.Object) ([]float64, *object.Error) {
	result := make([]float64, 0, len(args))
	for _, arg := range args {
		num, ok := arg.(*object.Number)
		if !ok {
			return nil, object.BlankErr("lib/number", arg.Inspect(object.ViewStdOut))
		}
		result = append(result, num.Value)
	}
	return result, nil
}

func listArg(args []object.Object, i int) (*object.List, *object.Error) {
	list, ok := args[i].(*object.List)
	if !ok {
		return nil, object.BlankErr("lib/list", args[i].Inspect(object.ViewStdOut))
	}
	return list, nil
}

func stringArg(args []object.Object, i int) (*object.String, *object.Error) {
	str, ok := args[i].(*object.String)
	if !ok {
		return nil, object.BlankErr("lib/str", args[i].Inspect(object.ViewStdOut))
	}
	return str, nil
}

// Numeric functions.

func add(env *object.Environment, args []object.Object) object.Object {
	nums, err := numbers(args)
	if err != nil {
		return err
	}
	sum := 0.0
	for _, n := range nums {
		sum = sum + n
	}
	return &object.Number{Value: sum}
}

// With one argument `-` negates it; with more it subtracts the rest from
// the first.
func subtract(env *object.Environment, args []object.Object) object.Object {
	nums, err := numbers(args)
	if err != nil {
		return err
	}
	switch len(nums) {
	case 0:
		return tooFewArgs(2, 0)
	case 1:
		return &object.Number{Value: -nums[0]}
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result = result - n
	}
	return &object.Number{Value: result}
}

func multiply(env *object.Environment, args []object.Object) object.Object {
	nums, err := numbers(args)
	if err != nil {
		return err
	}
	product := 1.0
	for _, n := range nums {
		product = product * n
	}
	return &object.Number{Value: product}
}

// With one argument `/` takes its reciprocal. Division by zero is not an
// error: the numbers are floats, so it makes an infinity.
func divide(env *object.Environment, args []object.Object) object.Object {
	nums, err := numbers(args)
	if err != nil {
		return err
	}
	switch len(nums) {
	case 0:
		return tooFewArgs(2, 0)
	case 1:
		return &object.Number{Value: 1.0 / nums[0]}
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result = result / n
	}
	return &object.Number{Value: result}
}

func modulo(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 2); err != nil {
		return err
	}
	a, aOk := args[0].(*object.Number)
	b, bOk := args[1].(*object.Number)
	if !aOk || !bOk {
		return object.BlankErr("lib/modulo")
	}
	return &object.Number{Value: math.Mod(a.Value, b.Value)}
}

func sqrt(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	num, ok := args[0].(*object.Number)
	if !ok {
		return object.BlankErr("lib/sqrt")
	}
	return &object.Number{Value: math.Sqrt(num.Value)}
}

func pow(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 2); err != nil {
		return err
	}
	a, aOk := args[0].(*object.Number)
	b, bOk := args[1].(*object.Number)
	if !aOk || !bOk {
		return object.BlankErr("lib/pow")
	}
	return &object.Number{Value: math.Pow(a.Value, b.Value)}
}

func naturalLog(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	num, ok := args[0].(*object.Number)
	if !ok {
		return object.BlankErr("lib/log")
	}
	return &object.Number{Value: math.Log(num.Value)}
}

func fibonacci(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	nums, err := numbers(args)
	if err != nil {
		return err
	}
	a, b := 0.0, 1.0
	for i := 0; i < int(nums[0]); i++ {
		a, b = b, a+b
	}
	return &object.Number{Value: a}
}

// Type checks. cons? answers for lists, as tradition demands, and lambda?
// is true of anything callable that isn't a form handler.

func loadChecks(env *object.Environment) {
	checks := map[string]object.ObjectType{
		"num?":    object.NUMBER_OBJ,
		"bool?":   object.BOOLEAN_OBJ,
		"str?":    object.STRING_OBJ,
		"symbol?": object.SYMBOL_OBJ,
		"cons?":   object.LIST_OBJ,
		"struct?": object.STRUCT_OBJ,
	}
	for name, whichType := range checks {
		DefineIntrinsic(env, name, makeCheck(whichType))
	}
	DefineIntrinsic(env, "lambda?", isLambda)
}

func makeCheck(whichType object.ObjectType) object.IntrinsicFn {
	return func(env *object.Environment, args []object.Object) object.Object {
		if err := checkArity(args, 1); err != nil {
			return err
		}
		return object.MakeBool(args[0].Type() == whichType)
	}
}

func isLambda(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	switch args[0].(type) {
	case *object.Lambda, *object.Intrinsic:
		return object.TRUE
	}
	return object.FALSE
}

// List functions.

func makeList(env *object.Environment, args []object.Object) object.Object {
	return object.ListFromSlice(args)
}

func cons(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 2); err != nil {
		return err
	}
	list, err := listArg(args, 1)
	if err != nil {
		return err
	}
	result := vector.Empty.Conj(args[0])
	for it := list.Elements.Iterator(); it.HasElem(); it.Next() {
		result = result.Conj(it.Elem())
	}
	return &object.List{Elements: result}
}

func car(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	list, err := listArg(args, 0)
	if err != nil {
		return err
	}
	if list.Len() == 0 {
		return object.BlankErr("lib/car/empty")
	}
	element, _ := list.Elements.Index(0)
	return element.(object.Object)
}

func cdr(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	list, err := listArg(args, 0)
	if err != nil {
		return err
	}
	if list.Len() == 0 {
		return object.BlankErr("lib/cdr/empty")
	}
	return &object.List{Elements: list.Elements.SubVector(1, list.Len())}
}

func listLength(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	list, err := listArg(args, 0)
	if err != nil {
		return err
	}
	return &object.Number{Value: float64(list.Len())}
}

// Indexing the empty list produces the empty list rather than an error, so
// that walking off the end of a list is something a program can do to
// itself quietly.
func nth(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 2); err != nil {
		return err
	}
	list, err := listArg(args, 0)
	if err != nil {
		return err
	}
	num, ok := args[1].(*object.Number)
	if !ok || num.Value != math.Trunc(num.Value) {
		return object.BlankErr("lib/nth/int")
	}
	if list.Len() == 0 {
		return object.EMPTY
	}
	index := int(num.Value)
	if index < 0 || index >= list.Len() {
		return object.BlankErr("lib/nth/range", args[1].Inspect(object.ViewStdOut))
	}
	element, _ := list.Elements.Index(index)
	return element.(object.Object)
}

func appendLists(env *object.Environment, args []object.Object) object.Object {
	result := vector.Empty
	for i := range args {
		list, err := listArg(args, i)
		if err != nil {
			return err
		}
		for it := list.Elements.Iterator(); it.HasElem(); it.Next() {
			result = result.Conj(it.Elem())
		}
	}
	return &object.List{Elements: result}
}

// Comparisons.

func makeComparison(test func(a, b float64) bool) object.IntrinsicFn {
	return func(env *object.Environment, args []object.Object) object.Object {
		if err := checkArity(args, 2); err != nil {
			return err
		}
		left, leftOk := args[0].(*object.Number)
		right, rightOk := args[1].(*object.Number)
		if !leftOk || !rightOk {
			return object.BlankErr("lib/compare",
				args[0].Inspect(object.ViewStdOut), args[1].Inspect(object.ViewStdOut))
		}
		return object.MakeBool(test(left.Value, right.Value))
	}
}

func isEqual(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 2); err != nil {
		return err
	}
	return object.MakeBool(object.Equals(args[0], args[1]))
}

// Logic. There is no truthiness and there is no short-circuiting: by the
// time `or` is called, both its arguments have been evaluated.

func or(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 2); err != nil {
		return err
	}
	left, leftOk := args[0].(*object.Boolean)
	right, rightOk := args[1].(*object.Boolean)
	if !leftOk || !rightOk {
		return object.BlankErr("lib/or")
	}
	return object.MakeBool(left.Value || right.Value)
}

func and(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 2); err != nil {
		return err
	}
	left, leftOk := args[0].(*object.Boolean)
	right, rightOk := args[1].(*object.Boolean)
	if !leftOk || !rightOk {
		return object.BlankErr("lib/and")
	}
	return object.MakeBool(left.Value && right.Value)
}

func not(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	b, ok := args[0].(*object.Boolean)
	if !ok {
		return object.BlankErr("lib/bool", args[0].Inspect(object.ViewStdOut))
	}
	return object.MakeBool(!b.Value)
}

// Control and I/O.

func exit(env *object.Environment, args []object.Object) object.Object {
	switch len(args) {
	case 0:
		os.Exit(0)
	case 1:
		nums, err := numbers(args)
		if err != nil {
			return err
		}
		os.Exit(int(nums[0]))
	}
	return object.BlankErr("lib/arity/most", 1, len(args))
}

// begin does nothing but return its last argument: the arguments were
// evaluated in order before it was called, which is all the sequencing
// there is to do.
func begin(env *object.Environment, args []object.Object) object.Object {
	if len(args) == 0 {
		return object.EMPTY
	}
	return args[len(args)-1]
}

func makePrinter(terminator string) object.IntrinsicFn {
	return func(env *object.Environment, args []object.Object) object.Object {
		var out bytes.Buffer
		for _, arg := range args {
			out.WriteString(arg.Inspect(object.ViewStdOut))
		}
		out.WriteString(terminator)
		fmt.Print(out.String())
		return object.EMPTY
	}
}

func apply(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 2); err != nil {
		return err
	}
	if arguments, ok := args[1].(*object.List); ok {
		switch callee := args[0].(type) {
		case *object.Lambda:
			return evaluator.Apply(callee, arguments.Slice(), env, token.Token{})
		case *object.Intrinsic:
			return callee.Fn(env, arguments.Slice())
		}
	}
	return object.BlankErr("lib/apply",
		args[0].Inspect(object.ViewStdOut), args[1].Inspect(object.ViewStdOut))
}

func concat(env *object.Environment, args []object.Object) object.Object {
	var out bytes.Buffer
	for _, arg := range args {
		out.WriteString(arg.Inspect(object.ViewStdOut))
	}
	return &object.String{Value: out.String()}
}

func eval(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	expr, err := object.ToExpr(args[0], token.Token{})
	if err != nil {
		return err
	}
	return evaluator.Eval(expr, env)
}

// Strings.

// A section of a format string: either literal text or the inside of a
// ${...} to be evaluated.
type section struct {
	text   string
	isExpr bool
}

func format(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	str, ok := args[0].(*object.String)
	if !ok {
		return object.BlankErr("lib/format/str", args[0].Inspect(object.ViewStdOut))
	}
	sections, ok := splitFormat(str.Value)
	if !ok {
		return object.BlankErr("lib/format/unclosed")
	}
	var out bytes.Buffer
	for _, s := range sections {
		if !s.isExpr {
			out.WriteString(s.text)
			continue
		}
		p := parser.New()
		exprs := p.ParseLine("format string", s.text)
		if p.ErrorsExist() {
			return p.Errors[0]
		}
		env.EnterScope()
		for _, expr := range exprs {
			result := evaluator.Eval(expr, env)
			if result.Type() == object.ERROR_OBJ {
				env.ExitScope()
				return result
			}
			out.WriteString(result.Inspect(object.ViewStdOut))
		}
		env.ExitScope()
	}
	return &object.String{Value: out.String()}
}

// splitFormat cuts a format string into literal and expression sections.
// The bool is false if an expression section was still open at the end of
// the string.
func splitFormat(s string) ([]section, bool) {
	runes := []rune(s)
	sections := []section{}
	last := 0
	enteringExpr := false
	inExpr := false
	for i, ch := range runes {
		switch {
		case ch == '{' && enteringExpr:
			sections = append(sections, section{text: string(runes[last : i-1])})
			last = i + 1
			inExpr = true
			enteringExpr = false
		case ch == '}' && inExpr:
			sections = append(sections, section{text: string(runes[last:i]), isExpr: true})
			last = i + 1
			inExpr = false
		case ch == '$':
			enteringExpr = true
		default:
			enteringExpr = false
		}
	}
	if inExpr {
		return nil, false
	}
	if last != len(runes) {
		sections = append(sections, section{text: string(runes[last:])})
	}
	return sections, true
}

func readLine(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 0); err != nil {
		return err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return object.BlankErr("host/input", err.Error())
	}
	return &object.String{Value: strings.TrimRight(line, "\r\n")}
}

func parse(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	str, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	p := parser.New()
	exprs := p.ParseLine("parse input", str.Value)
	if p.ErrorsExist() {
		return p.Errors[0]
	}
	values := make([]object.Object, 0, len(exprs))
	for _, expr := range exprs {
		values = append(values, object.FromExpr(expr))
	}
	return object.ListFromSlice(values)
}

// Files.

func importFile(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	str, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	if err := ImportFile(str.Value, env); err != nil {
		return err
	}
	return object.EMPTY
}

func readFile(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	str, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	content, e := os.ReadFile(str.Value)
	if e != nil {
		return object.BlankErr("host/file/read", e.Error())
	}
	return &object.String{Value: string(content)}
}

func writeFile(env *object.Environment, args []object.Object) object.Object {
	if err := checkArity(args, 2); err != nil {
		return err
	}
	path, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	content, err := stringArg(args, 1)
	if err != nil {
		return err
	}
	if e := os.WriteFile(path.Value, []byte(content.Value), 0644); e != nil {
		return object.BlankErr("host/file/write", e.Error())
	}
	return object.EMPTY
}

// Database access. The connection the hub opened is fetched from the
// database package; scripts can't open their own.

func sqlQuery(env *object.Environment, args []object.Object) object.Object {
	if len(args) == 0 {
		return tooFewArgs(1, 0)
	}
	str, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	db := database.Connection()
	if db == nil {
		return object.BlankErr("sql/conn")
	}
	params, err := sqlParams(args[1:])
	if err != nil {
		return err
	}
	rows, e := database.QueryRows(db, str.Value, params)
	if e != nil {
		return object.BlankErr("sql/query", e.Error())
	}
	return rows
}

func sqlExec(env *object.Environment, args []object.Object) object.Object {
	if len(args) == 0 {
		return tooFewArgs(1, 0)
	}
	str, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	db := database.Connection()
	if db == nil {
		return object.BlankErr("sql/conn")
	}
	params, err := sqlParams(args[1:])
	if err != nil {
		return err
	}
	affected, e := database.ExecStatement(db, str.Value, params)
	if e != nil {
		return object.BlankErr("sql/exec", e.Error())
	}
	return &object.Number{Value: float64(affected)}
}

func sqlParams(args []object.Object) ([]any, *object.Error) {
	params := make([]any, 0, len(args))
	for _, arg := range args {
		switch arg := arg.(type) {
		case *object.Number:
			params = append(params, arg.Value)
		case *object.Boolean:
			params = append(params, arg.Value)
		case *object.String:
			params = append(params, arg.Value)
		default:
			return nil, object.BlankErr("sql/args", arg.Inspect(object.ViewStdOut))
		}
	}
	return params, nil
}

// Trigonometry.

func loadTrigFns(env *object.Environment) {
	trigFns := map[string]func(float64) float64{
		"sin":  math.Sin,
		"cos":  math.Cos,
		"tan":  math.Tan,
		"asin": math.Asin,
		"acos": math.Acos,
		"atan": math.Atan,
	}
	for name, fn := range trigFns {
		DefineIntrinsic(env, name, makeTrigFn(name, fn))
	}
}

func makeTrigFn(name string, fn func(float64) float64) object.IntrinsicFn {
	return func(env *object.Environment, args []object.Object) object.Object {
		if err := checkArity(args, 1); err != nil {
			return err
		}
		num, ok := args[0].(*object.Number)
		if !ok {
			return object.BlankErr("lib/trig", name)
		}
		return &object.Number{Value: fn(num.Value)}
	}
}
