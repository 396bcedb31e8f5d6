package evaluator_test

import (
	"testing"

	"github.com/tim-hardcastle/Remora/evaluator"
	"github.com/tim-hardcastle/Remora/initializer"
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/parser"
)

// evalLine runs a line as the REPL would, in a fresh environment with the
// intrinsics loaded, and returns the last result, or the first error.
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

func TestEvaluator(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`42`, `42`},
		{`"hello"`, `"hello"`},
		{`true`, `true`},
		{`()`, `()`},
		{`'x`, `x`},
		{`'()`, `()`},
		{`'(1 2 3)`, `(1 2 3)`},
		{`(define x 3) x`, `3`},
		{`(define x 3) (define y 4) (+ x y)`, `7`},
		{`(define (square x) (* x x)) (square 5)`, `25`},
		{`(define (fact n) (if (< n 2) 1 (* n (fact (- n 1))))) (fact 5)`, `120`},
		{`(define (f x) (define y (* x 2)) (+ x y)) (f 3)`, `9`},
		{`((lambda (x y) (+ x y)) 2 3)`, `5`},
		{`((lambda () 7))`, `7`},
		{`((lambda (x xs...) (len xs)) 1 2 3)`, `2`},
		{`((lambda (xs...) xs) 1 2 3)`, `(1 2 3)`},
		{`((lambda (xs...) xs))`, `()`},
		{`(if true 1 2)`, `1`},
		{`(if false 1 2)`, `2`},
		{`(if (< 1 2) "yes" "no")`, `"yes"`},
		{`(cond (false 1) (true 2) (else 3))`, `2`},
		{`(cond (false 1) (else 3))`, `3`},
		{`(cond (false 1))`, `()`},
		{`(let ((a 1) (b (+ a 1))) (+ a b))`, `3`},
		{`(define x 1) (let ((x 2)) x)`, `2`},
		{`(define x 1) (let ((x 2)) 0) x`, `1`},
		{`(define x "outer") (let ((x "inner")) #super:x)`, `"outer"`},
		{`(define (free) (* n 2)) (define (callit n) (free)) (callit 7)`, `14`},
		{`(define x 1) (cond ((begin (define x 99) true) x))`, `1`},
		{`(define-struct point (x y)) (make-point 1 2)`, `(make-point 1 2)`},
		{`(define-struct point (x y)) (point-x (make-point 1 2))`, `1`},
		{`(define-struct point (x y)) (point-y (make-point 1 2))`, `2`},
		{`(define-struct point (x y)) (point? (make-point 1 2))`, `true`},
		{`(define-struct point (x y)) (point? 5)`, `false`},
		{`(define-struct point (x y)) (point? point?)`, `false`},
		{`(define-struct point (x y)) (define-struct point3 (x y z)) (point3? (make-point 1 2))`, `false`},
		{`(define-struct point (x y)) (define-struct pair (a b)) (point-x (make-pair 10 20))`, `10`},
		{`(define-struct p (a)) (define-struct p (a b)) (make-p 1 2)`, `(make-p 1 2)`},
		{`(define-struct point (x y)) (eq? (make-point 1 2) (make-point 1 2))`, `true`},
		{`(define-struct point (x y)) (define-struct pair (x y)) (eq? (make-point 1 2) (make-pair 1 2))`, `false`},
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

func TestEvaluatorErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`nope`, `eval/unbound`},
		{`#super:nope`, `eval/unbound`},
		{`(5 6)`, `eval/notfn`},
		{`("str" 1)`, `eval/notfn`},
		{`((lambda (x) x) 1 2)`, `apply/arity`},
		{`((lambda (x y) x) 1)`, `apply/arity`},
		{`((lambda (x xs...) x))`, `apply/arity/least`},
		{`(define x)`, `form/define/arity`},
		{`(define x 1 2)`, `form/define/extra`},
		{`(define if 1)`, `form/define/reserved`},
		{`(define 5 1)`, `form/define/ident`},
		{`(define () 1)`, `form/define/empty`},
		{`(lambda (x))`, `form/lambda/arity`},
		{`(lambda 5 x)`, `form/lambda/list`},
		{`(lambda (5) x)`, `form/lambda/param`},
		{`(lambda (xs... y) xs)`, `form/lambda/variadic`},
		{`(if true 1)`, `form/if/arity`},
		{`(if 1 2 3)`, `form/if/bool`},
		{`(cond 5)`, `form/cond/clause`},
		{`(cond (true))`, `form/cond/arity`},
		{`(cond (1 2))`, `form/cond/bool`},
		{`(let ((a 1)))`, `form/let/arity`},
		{`(let x 5)`, `form/let/bindings`},
		{`(let (x) x)`, `form/let/binding`},
		{`(let ((a)) a)`, `form/let/pair`},
		{`(let ((5 1)) 2)`, `form/let/ident`},
		{`(define-struct point)`, `form/struct/arity`},
		{`(define-struct 5 (x))`, `form/struct/name`},
		{`(define-struct point 5)`, `form/struct/fields`},
		{`(define-struct point ())`, `form/struct/empty`},
		{`(define-struct point (5))`, `form/struct/field`},
		{`(define-struct point (x y)) (make-point 1)`, `struct/make/arity`},
		{`(define-struct point (x y)) (define mk make-point) (mk 1 2)`, `struct/make/prefix`},
		{`(define-struct point (x y)) (point-x 5)`, `struct/access/struct`},
		{`(define-struct point (x y)) (point-x)`, `struct/access/arity`},
		{`(define-struct p (a b)) (define-struct p (c)) (p-b (make-p 1))`, `struct/access/field/a`},
		{`(define-struct point (x y)) (define-struct pair (a)) (point-y (make-pair 1))`, `struct/access/field/b`},
		{`(define-struct point (x y)) (point? (nope))`, `eval/unbound`},
		{`(define (f) (car ())) (f)`, `lib/car/empty`},
		{`(+ (car ()) nope)`, `lib/car/empty`},
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

// Arguments evaluate strictly left to right, so an effect in an earlier
// argument is visible to a later one.
func TestEvalOrder(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`(+ (begin (define a 1) 1) a)`, `2`},
		{`(list (begin (define n 1) n) (begin (define n (+ n 1)) n))`, `(1 2)`},
		{`(concat (begin (define w "a") w) (begin (define w "b") w))`, `"ab"`},
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

// Whatever happens during an evaluation, on the way out the scope stack
// must be as deep as it was on the way in.
func TestScopeBalance(t *testing.T) {
	tests := []string{
		`(+ 1 2)`,
		`(let ((a 1)) a)`,
		`(let ((a (car ()))) a)`,
		`(cond (false 1) (else 2))`,
		`(cond ((car ()) 1))`,
		`((lambda (x) x) 5)`,
		`((lambda (x) (nope)) 5)`,
		`((lambda (x xs...) xs) 1 2)`,
		`(define x 3) (format "${(car ())}")`,
		`(define-struct point (x y)) (point-x (make-point 1 2))`,
		`(define (f) (f2)) (f)`,
	}
	for i, input := range tests {
		env := initializer.NewEnvironment()
		before := env.Depth()
		p := parser.New()
		for _, expr := range p.ParseLine("test", input) {
			evaluator.Eval(expr, env)
		}
		if env.Depth() != before {
			t.Fatalf("tests[%d] - scopes unbalanced. expected=%d, got=%d", i, before, env.Depth())
		}
	}
}

// A lambda body resolves its free identifiers at the call site. The flip
// side of the dynamic scoping shown in TestEvaluator is that a binding
// made while a call is in flight is gone when the call returns.
func TestCallScopesVanish(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`(define (f) (define t 9) t) (f) t`, `eval/unbound`},
		{`(let ((a 1)) a) a`, `eval/unbound`},
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
