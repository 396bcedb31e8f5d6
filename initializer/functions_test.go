package initializer_test

import (
	"testing"

	"github.com/tim-hardcastle/Remora/evaluator"
	"github.com/tim-hardcastle/Remora/initializer"
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/parser"
)

func evalLine(input string) object.Object {
	p := parser.New()
	exprs := p.ParseLine("test", input)
	if p.ErrorsExist() {
		return p.Errors[0]
	}
	env := initializer.NewEnvironment()
	var result object.Object = object.EMPTY
	for _, expr := range exprs {
		result = evaluator.Eval(expr, env)
		if result.Type() == object.ERROR_OBJ {
			return result
		}
	}
	return result
}

func TestIntrinsics(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`(+)`, `0`},
		{`(+ 1 2 3)`, `6`},
		{`(- 5)`, `-5`},
		{`(- 10 1 2)`, `7`},
		{`(*)`, `1`},
		{`(* 2 3 4)`, `24`},
		{`(/ 2)`, `0.5`},
		{`(/ 12 2 3)`, `2`},
		{`(/ 1 0)`, `+Inf`},
		{`(modulo 7 3)`, `1`},
		{`(sqrt 16)`, `4`},
		{`(sqrt -1)`, `NaN`},
		{`(pow 2 10)`, `1024`},
		{`(log 1)`, `0`},
		{`(fibonacci 10)`, `55`},
		{`(num? 5)`, `true`},
		{`(num? "5")`, `false`},
		{`(bool? false)`, `true`},
		{`(str? "hi")`, `true`},
		{`(symbol? 'x)`, `true`},
		{`(cons? (list 1))`, `true`},
		{`(cons? ())`, `true`},
		{`(cons? "no")`, `false`},
		{`(lambda? (lambda (x) x))`, `true`},
		{`(lambda? +)`, `true`},
		{`(lambda? 5)`, `false`},
		{`(struct? 5)`, `false`},
		{`(list 1 2 3)`, `(1 2 3)`},
		{`(list)`, `()`},
		{`(cons 0 (list 1 2))`, `(0 1 2)`},
		{`(car (list 1 2))`, `1`},
		{`(cdr (list 1 2 3))`, `(2 3)`},
		{`(cdr (list 1))`, `()`},
		{`(len (list 1 2 3))`, `3`},
		{`(len ())`, `0`},
		{`(nth (list "a" "b" "c") 1)`, `"b"`},
		{`(nth () 5)`, `()`},
		{`(append (list 1 2) (list 3) (list 4 5))`, `(1 2 3 4 5)`},
		{`(append)`, `()`},
		{`(< 1 2)`, `true`},
		{`(<= 2 2)`, `true`},
		{`(> 1 2)`, `false`},
		{`(>= 3 2)`, `true`},
		{`(eq? 2 2)`, `true`},
		{`(eq? 2 3)`, `false`},
		{`(eq? "a" "a")`, `true`},
		{`(eq? "a" 1)`, `false`},
		{`(eq? '() ())`, `true`},
		{`(eq? (list 1 (list 2)) (list 1 (list 2)))`, `true`},
		{`(eq? + +)`, `false`},
		{`(or true false)`, `true`},
		{`(or false false)`, `false`},
		{`(and true false)`, `false`},
		{`(and true true)`, `true`},
		{`(not false)`, `true`},
		{`(begin 1 2 3)`, `3`},
		{`(begin)`, `()`},
		{`(concat "a" 1 "b")`, `"a1b"`},
		{`(concat)`, `""`},
		{`(apply + (list 1 2 3))`, `6`},
		{`(apply (lambda (a b) (* a b)) (list 3 4))`, `12`},
		{`(eval '(+ 1 2))`, `3`},
		{`(eval (cons '+ (list 1 2)))`, `3`},
		{`(eval 5)`, `5`},
		{`(define x 3) (format "x = ${x}!")`, `"x = 3!"`},
		{`(format "${(+ 1 2)} and ${(* 2 2)}")`, `"3 and 4"`},
		{`(format "plain")`, `"plain"`},
		{`(format "")`, `""`},
		{`(parse "(+ 1 2)")`, `((+ 1 2))`},
		{`(parse "1 2")`, `(1 2)`},
		{`(eval (car (parse "(* 3 4)")))`, `12`},
		{`(sin 0)`, `0`},
		{`(cos 0)`, `1`},
		{`(atan 0)`, `0`},
		{`empty`, `()`},
		{`env/lisp-name`, `"remora"`},
		{`(< math/e math/pi)`, `true`},
	}
	for i, tt := range tests {
		result := evalLine(tt.input)
		if result.Type() == object.ERROR_OBJ {
			t.Fatalf("tests[%d] - unexpected error: %s", i, result.(*object.Error).ErrorId)
		}
		if got := result.Inspect(object.ViewLiteral); got != tt.want {
			t.Fatalf("tests[%d] - result wrong. expected=%q, got=%q", i, tt.want, got)
		}
	}
}

func TestIntrinsicErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`(+ 1 "a")`, `lib/number`},
		{`(-)`, `lib/arity/least`},
		{`(/)`, `lib/arity/least`},
		{`(modulo 1)`, `lib/arity`},
		{`(modulo "a" 2)`, `lib/modulo`},
		{`(sqrt "x")`, `lib/sqrt`},
		{`(pow 2 "x")`, `lib/pow`},
		{`(log "x")`, `lib/log`},
		{`(fibonacci "x")`, `lib/number`},
		{`(car ())`, `lib/car/empty`},
		{`(cdr ())`, `lib/cdr/empty`},
		{`(car 5)`, `lib/list`},
		{`(cons 1 2)`, `lib/list`},
		{`(nth (list 1) 0.5)`, `lib/nth/int`},
		{`(nth (list 1) "x")`, `lib/nth/int`},
		{`(nth (list 1) 3)`, `lib/nth/range`},
		{`(nth (list 1) -1)`, `lib/nth/range`},
		{`(append (list 1) 2)`, `lib/list`},
		{`(< 1 "a")`, `lib/compare`},
		{`(<= true false)`, `lib/compare`},
		{`(or 1 true)`, `lib/or`},
		{`(and true 1)`, `lib/and`},
		{`(not 1)`, `lib/bool`},
		{`(exit 1 2)`, `lib/arity/most`},
		{`(exit "now")`, `lib/number`},
		{`(apply 5 (list))`, `lib/apply`},
		{`(apply + 5)`, `lib/apply`},
		{`(eval +)`, `eval/convert/a`},
		{`(eval if)`, `eval/convert/b`},
		{`(format 5)`, `lib/format/str`},
		{`(format "${x")`, `lib/format/unclosed`},
		{`(format "${nope}")`, `eval/unbound`},
		{`(parse 5)`, `lib/str`},
		{`(parse "(1")`, `parse/eof/list`},
		{`(sin "x")`, `lib/trig`},
		{`(import 5)`, `lib/str`},
		{`(import "no-such-file.rmr")`, `host/file/import`},
		{`(read-file "no-such-file.txt")`, `host/file/read`},
		{`(sql/query "SELECT 1")`, `sql/conn`},
		{`(sql/exec "DELETE FROM t")`, `sql/conn`},
	}
	for i, tt := range tests {
		result := evalLine(tt.input)
		if result.Type() != object.ERROR_OBJ {
			t.Fatalf("tests[%d] - expected an error, got=%q", i, result.Inspect(object.ViewLiteral))
		}
		if got := result.(*object.Error).ErrorId; got != tt.want {
			t.Fatalf("tests[%d] - error wrong. expected=%q, got=%q", i, tt.want, got)
		}
	}
}

// Intrinsics return their errors blank; what the user sees must have been
// filled in with a message and the position of the call.
func TestErrorFilling(t *testing.T) {
	result := evalLine(`(car ())`)
	err, ok := result.(*object.Error)
	if !ok {
		t.Fatalf("expected an error, got=%q", result.Inspect(object.ViewLiteral))
	}
	if err.Message == "" {
		t.Fatalf("error message not filled in")
	}
	if err.Token.Source != "test" {
		t.Fatalf("error token wrong. expected source=%q, got=%q", "test", err.Token.Source)
	}
	if len(err.Trace) == 0 {
		t.Fatalf("error trace empty")
	}
}
