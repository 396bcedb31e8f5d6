package object

import (
	"strconv"

	"github.com/tim-hardcastle/Remora/text"
	"github.com/tim-hardcastle/Remora/token"
)

// A map from error identifiers to functions that supply the corresponding
// error messages and explanations.
//
// Errors in the map are in alphabetical order of their identifiers.
//
// Major categories are apply, eval, form, host, lib, parse, sql, and struct.
//
// Two otherwise identical errors thrown in different places in the Go code
// must be assigned different identifiers, if only by suffixing /a, /b, etc
// to the identifier.

type ErrorCreator struct {
	Message     func(tok token.Token, args ...any) string
	Explanation func(errors Errors, pos int, tok token.Token, args ...any) string
}

type Errors = []*Error

// CreateErr is for code that knows where it is: the token goes into the
// error and the message is made up straight away.
func CreateErr(ident string, tok token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[ident]
	if !ok {
		return &Error{ErrorId: ident, Message: "Oopsie, can't find errorId " + ident, Token: tok}
	}
	return &Error{ErrorId: ident, Message: creator.Message(tok, args...), Info: args, Token: tok}
}

// BlankErr is for the intrinsics, which don't know where they were called
// from. They record the identifier and the info and leave the message
// empty; the evaluator fills in the message and the token at the call site.
func BlankErr(ident string, args ...any) *Error {
	return &Error{ErrorId: ident, Info: args}
}

func Throw(errorID string, errors Errors, tok token.Token, args ...any) Errors {
	return append(errors, CreateErr(errorID, tok, args...))
}

// GetList renders the whole accumulated list, numbered so that the hub's
// 'why <n>' command can pick one out.
func GetList(errors Errors) string {
	result := "\n"
	for i, err := range errors {
		result = result + "[" + strconv.Itoa(i) + "] " + err.Inspect(ViewStdOut) + "\n"
	}
	return result + "\n"
}

// GetExplanation renders the longer account of the error at the given
// position in the list, for when the short message isn't enough.
func GetExplanation(errors Errors, pos int) string {
	if pos < 0 || pos >= len(errors) {
		return "There is no error with that number."
	}
	err := errors[pos]
	creator, ok := ErrorCreatorMap[err.ErrorId]
	if !ok {
		return "Oopsie, can't find errorId " + err.ErrorId
	}
	return creator.Explanation(errors, pos, err.Token, err.Info...)
}

var ErrorCreatorMap = map[string]ErrorCreator{

	// TEMPLATE
	"": {
		Message: func(tok token.Token, args ...any) string {
			return ""
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return ""
		},
	},

	"apply/arity": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The function you applied declares exactly " + strconv.Itoa(args[0].(int)) +
				" parameter(s), so it must be given exactly that many arguments, and you gave it " +
				strconv.Itoa(args[1].(int)) + "."
		},
	},

	"apply/arity/least": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected at least " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The function you applied is variadic: its final parameter soaks up however many " +
				"trailing arguments you supply, including none. But each of the other parameters " +
				"needs an argument of its own, so the call must supply at least " +
				strconv.Itoa(args[0].(int)) + "."
		},
	},

	"eval/convert/a": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " cannot be converted to an expression"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A built-in function is a piece of the interpreter itself, not something that was " +
				"ever written as source code, so there is no expression it can turn back into."
		},
	},

	"eval/convert/b": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " cannot be converted to an expression"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A special form is a piece of the interpreter itself, not something that was " +
				"ever written as source code, so there is no expression it can turn back into."
		},
	},

	"eval/convert/c": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " cannot be converted to an expression"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This value has no expression form, so it can't be treated as code."
		},
	},

	"eval/node": {
		Message: func(tok token.Token, args ...any) string {
			return "Could not evaluate " + args[0].(string)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This is an internal error: the evaluator was handed a kind of expression it " +
				"doesn't know about. You should never see this; if you do, please report it."
		},
	},

	"eval/notfn": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a function"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The first thing in a list is applied to the rest, so it must evaluate to " +
				"something applicable: a lambda, a built-in function, or a special form. " +
				"Here it evaluated to " + text.Emph(args[0].(string)) + ", which is none of those. " +
				"If you meant the list as data rather than a call, quote it."
		},
	},

	"eval/unbound": {
		Message: func(tok token.Token, args ...any) string {
			return "Variable " + args[0].(string) + " is unbound"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Nothing by the name " + text.Emph(args[0].(string)) + " is defined in any scope " +
				"visible from here. Perhaps you misspelled it, or defined it inside a scope that " +
				"has since been exited, or haven't defined it yet."
		},
	},

	"form/cond/arity": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Each clause of a 'cond' must be a two-element list: a test and the result to " +
				"return if the test is true, e.g. '(cond ((> x 0) \"positive\") (else \"not\"))'."
		},
	},

	"form/cond/bool": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a bool"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The test of each 'cond' clause must evaluate to 'true' or 'false'. There is no " +
				"notion of truthiness here: a number or a string is not a stand-in for a bool."
		},
	},

	"form/cond/clause": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Everything after the word 'cond' should be a clause, and a clause is a " +
				"two-element list: a test and a result."
		},
	},

	"form/define/arity": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected at least " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A 'define' needs a name and a value, e.g. '(define x 5)'; or a function " +
				"signature and a body, e.g. '(define (double x) (* 2 x))'."
		},
	},

	"form/define/empty": {
		Message: func(tok token.Token, args ...any) string {
			return "Cannot redefine empty list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The function shorthand of 'define' expects the name of the function followed by " +
				"its parameters, e.g. '(define (double x) (* 2 x))'. Here the list after 'define' " +
				"is empty, so there is nothing to define."
		},
	},

	"form/define/extra": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "When 'define' is given a plain name it takes exactly one more argument, the " +
				"value. Multiple body expressions are only allowed in the function shorthand, " +
				"where the thing defined is a list, e.g. '(define (f x) ...)'."
		},
	},

	"form/define/ident": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not an identifier"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The first argument of 'define' says what to define, so it must be an " +
				"identifier, e.g. '(define x 5)', or a function signature, e.g. " +
				"'(define (double x) (* 2 x))'."
		},
	},

	"form/define/reserved": {
		Message: func(tok token.Token, args ...any) string {
			return "\"" + args[0].(string) + "\" is a reserved word"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The words that give the language its structure can't be redefined: " +
				"if " + text.Emph(args[0].(string)) + " could mean something else, nothing " +
				"written with it could be trusted to parse the way you meant."
		},
	},

	"form/if/arity": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "An 'if' takes exactly three arguments: a condition, the result if the condition " +
				"is true, and the result if it is false. If you have nothing to do in one branch, " +
				"you can return 'empty'."
		},
	},

	"form/if/bool": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a bool"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The condition of an 'if' must evaluate to 'true' or 'false'. There is no " +
				"notion of truthiness here: a number or a string is not a stand-in for a bool."
		},
	},

	"form/lambda/arity": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A 'lambda' takes exactly two arguments: a list of parameters and one body " +
				"expression, e.g. '(lambda (x y) (+ x y))'. If you want several body " +
				"expressions, wrap them in a 'begin'."
		},
	},

	"form/lambda/list": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The first argument of 'lambda' is its parameter list. Even a single parameter " +
				"must be wrapped in a list: '(lambda (x) x)', not '(lambda x x)'."
		},
	},

	"form/lambda/param": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not an identifier"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The parameters of a 'lambda' are the names its arguments will be bound to, so " +
				"each of them must be an identifier."
		},
	},

	"form/lambda/variadic": {
		Message: func(tok token.Token, args ...any) string {
			return "Only the final parameter of a function may be variadic"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A parameter ending in '...' collects all the remaining arguments of a call, " +
				"so it only makes sense in the last position: anything after it could never " +
				"receive an argument."
		},
	},

	"form/let/arity": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A 'let' takes exactly two arguments: a list of bindings and a body, e.g. " +
				"'(let ((x 1) (y 2)) (+ x y))'."
		},
	},

	"form/let/binding": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Each binding of a 'let' is a two-element list: a name and the value to bind " +
				"it to, e.g. '(x 1)'."
		},
	},

	"form/let/bindings": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The first argument of 'let' is its list of bindings, even when there is only " +
				"one binding: '(let ((x 1)) ...)'."
		},
	},

	"form/let/ident": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not an identifier"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The first element of each 'let' binding is the name being bound, so it must " +
				"be an identifier."
		},
	},

	"form/let/pair": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Each binding of a 'let' is a two-element list: a name and the value to bind " +
				"it to, e.g. '(x 1)'."
		},
	},

	"form/struct/arity": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A 'define-struct' takes exactly two arguments: the name of the struct type " +
				"and the list of its fields, e.g. '(define-struct Point (x y))'."
		},
	},

	"form/struct/empty": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A struct type needs at least one field. A struct with no fields would have " +
				"nothing to construct, access, or distinguish."
		},
	},

	"form/struct/field": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not an identifier"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The fields of a struct are names, so each element of the field list must be " +
				"an identifier."
		},
	},

	"form/struct/fields": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The second argument of 'define-struct' is the list of the struct's fields, " +
				"e.g. '(define-struct Point (x y))'."
		},
	},

	"form/struct/name": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not an identifier"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The first argument of 'define-struct' is the name of the struct type, so it " +
				"must be an identifier."
		},
	},

	"host/file/import": {
		Message: func(tok token.Token, args ...any) string {
			return "os returns '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The main body of the error message was generated by the os of your computer " +
				"when the interpreter tried to read the file you asked it to import. If you " +
				"don't know what it means, you should consult the documentation of your os."
		},
	},

	"host/file/read": {
		Message: func(tok token.Token, args ...any) string {
			return "os returns '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The main body of the error message was generated by the os of your computer " +
				"when the interpreter tried to read the file. If you don't know what it means, " +
				"you should consult the documentation of your os."
		},
	},

	"host/file/write": {
		Message: func(tok token.Token, args ...any) string {
			return "os returns '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The main body of the error message was generated by the os of your computer " +
				"when the interpreter tried to write the file. If you don't know what it means, " +
				"you should consult the documentation of your os."
		},
	},

	"host/input": {
		Message: func(tok token.Token, args ...any) string {
			return "os returns '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The main body of the error message was generated by the os of your computer " +
				"when the interpreter tried to read a line from the standard input."
		},
	},

	"lib/and": {
		Message: func(tok token.Token, args ...any) string {
			return "\"and\" may only be called on bool values"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Both arguments of 'and' must be 'true' or 'false'. There is no notion of " +
				"truthiness here: a number or a string is not a stand-in for a bool."
		},
	},

	"lib/apply": {
		Message: func(tok token.Token, args ...any) string {
			return "Contract not satisfied: " + args[0].(string) + " " + args[1].(string)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'apply' takes a function and a list, and calls the function with the " +
				"elements of the list as its arguments. One or both of the things you gave " +
				"it was of the wrong sort."
		},
	},

	"lib/arity": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This built-in function takes exactly " + strconv.Itoa(args[0].(int)) +
				" argument(s), and you gave it " + strconv.Itoa(args[1].(int)) + "."
		},
	},

	"lib/arity/least": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected at least " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This built-in function takes a variable number of arguments, but not as few " +
				"as that."
		},
	},

	"lib/arity/most": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected at most " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This built-in function takes a variable number of arguments, but not as many " +
				"as that."
		},
	},

	"lib/bool": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a bool"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This function is only defined on bool values, 'true' and 'false'."
		},
	},

	"lib/car/empty": {
		Message: func(tok token.Token, args ...any) string {
			return "Cannot call car on an empty list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'car' produces the first element of a list, and the empty list hasn't got " +
				"one. If the list you're working through may be empty, test it with " +
				"'(eq? xs empty)' before taking its head."
		},
	},

	"lib/cdr/empty": {
		Message: func(tok token.Token, args ...any) string {
			return "Cannot call cdr on an empty list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'cdr' produces everything after the first element of a list, and the empty " +
				"list hasn't got a first element to come after. If the list you're working " +
				"through may be empty, test it with '(eq? xs empty)' before taking its tail."
		},
	},

	"lib/compare": {
		Message: func(tok token.Token, args ...any) string {
			return "Cannot compare " + args[0].(string) + " and " + args[1].(string)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The ordering comparisons are only defined on numbers. For equality of other " +
				"values, use 'eq?'."
		},
	},

	"lib/format/str": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a str"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'format' takes a string, possibly containing '${...}' sections to " +
				"interpolate, and you gave it something that isn't a string."
		},
	},

	"lib/format/unclosed": {
		Message: func(tok token.Token, args ...any) string {
			return "Unclosed expression while interpolating string"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A '${' in a format string begins an embedded expression, which must be closed " +
				"with a '}' before the string ends."
		},
	},

	"lib/list": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This function is only defined on lists."
		},
	},

	"lib/log": {
		Message: func(tok token.Token, args ...any) string {
			return "\"log\" must be passed a num"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'log' takes one number and produces its natural logarithm."
		},
	},

	"lib/modulo": {
		Message: func(tok token.Token, args ...any) string {
			return "\"modulo\" must be passed nums"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'modulo' takes two numbers and produces the remainder of dividing the first " +
				"by the second."
		},
	},

	"lib/nth/int": {
		Message: func(tok token.Token, args ...any) string {
			return "List index must be an integer"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "All numbers here are floating-point, but an index into a list must have " +
				"nothing after the decimal point: there is no element two-and-a-half."
		},
	},

	"lib/nth/range": {
		Message: func(tok token.Token, args ...any) string {
			return "List index " + args[0].(string) + " is out of range"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Lists are indexed from 0, so the biggest index into a list is one less than " +
				"its length."
		},
	},

	"lib/number": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a number"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This function is only defined on numbers."
		},
	},

	"lib/or": {
		Message: func(tok token.Token, args ...any) string {
			return "\"or\" may only be called on bool values"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Both arguments of 'or' must be 'true' or 'false'. There is no notion of " +
				"truthiness here: a number or a string is not a stand-in for a bool."
		},
	},

	"lib/pow": {
		Message: func(tok token.Token, args ...any) string {
			return "\"pow\" must be passed nums"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'pow' takes two numbers and raises the first to the power of the second."
		},
	},

	"lib/sqrt": {
		Message: func(tok token.Token, args ...any) string {
			return "\"sqrt\" must be passed a num"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'sqrt' takes one number and produces its square root."
		},
	},

	"lib/str": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a str"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This function is only defined on strings."
		},
	},

	"lib/trig": {
		Message: func(tok token.Token, args ...any) string {
			return "\"" + args[0].(string) + "\" must be passed a num"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The trigonometric functions each take one number, an angle in radians."
		},
	},

	"parse/atom/bad": {
		Message: func(tok token.Token, args ...any) string {
			return "Invalid identifier " + args[0].(string)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Identifiers may contain letters, digits, and the characters " +
				"'-_+/*%><=?!&$.#:λ', and this contains something else."
		},
	},

	"parse/atom/empty": {
		Message: func(tok token.Token, args ...any) string {
			return "Empty identifier"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A '...' on the end of an identifier marks it as variadic, so '...' by itself " +
				"would be an identifier with no name."
		},
	},

	"parse/close": {
		Message: func(tok token.Token, args ...any) string {
			return "Unexpected '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This closing bracket closes nothing: every '(' or '[' before it has already " +
				"been matched." + blame(errors, pos, "parse/eof/list")
		},
	},

	"parse/eof/list": {
		Message: func(tok token.Token, args ...any) string {
			return "Unexpected EOF before end of list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The input ended while a list was still open. Perhaps you have more '(' than " +
				"')'."
		},
	},

	"parse/eof/quote": {
		Message: func(tok token.Token, args ...any) string {
			return "Unexpected EOF after quote"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A ' quotes the expression after it, and the input ended before there was one."
		},
	},

	"parse/eof/string": {
		Message: func(tok token.Token, args ...any) string {
			return "Unexpected EOF before end of string"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The input ended inside a string literal: a '\"' opened it and no '\"' closed " +
				"it. Note that strings here are raw: there are no escape sequences, and every " +
				"'\"' counts."
		},
	},

	"sql/args": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " cannot be used as a query argument"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The arguments following the SQL text are substituted for its placeholders, " +
				"so each of them must be a number, a bool, or a string."
		},
	},

	"sql/conn": {
		Message: func(tok token.Token, args ...any) string {
			return "no database connection is open"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Before a script can use 'sql/query' or 'sql/exec', a connection must be " +
				"configured with the hub's 'db init' command."
		},
	},

	"sql/exec": {
		Message: func(tok token.Token, args ...any) string {
			return "database returns '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The main body of the error message was generated by the database when it " +
				"tried to execute your statement. If you don't know what it means, you should " +
				"consult the documentation of the database."
		},
	},

	"sql/query": {
		Message: func(tok token.Token, args ...any) string {
			return "database returns '" + args[0].(string) + "'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The main body of the error message was generated by the database when it " +
				"tried to run your query. If you don't know what it means, you should consult " +
				"the documentation of the database."
		},
	},

	"struct/access/accessor": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not an accessor"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A field accessor works out what to do from its own name, which has the form " +
				"'<struct>-<field>'. This one has been bound to a name with no hyphen in it, " +
				"so it can no longer tell what struct type and field it is for."
		},
	},

	"struct/access/arity": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A field accessor takes exactly one argument, the struct instance to read " +
				"the field from."
		},
	},

	"struct/access/field/a": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " has no field " + args[1].(string)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A field accessor works out what to do from its own name, which has the form " +
				"'<struct>-<field>'. The struct type named before the last hyphen exists, but " +
				"it declares no field named after it."
		},
	},

	"struct/access/field/b": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " has no field " + args[1].(string)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "An accessor looks the field up by position in the struct type its own name " +
				"begins with, and then reads that position from whatever struct instance you " +
				"pass it. This instance is of some other struct type, and too short to have " +
				"that position at all."
		},
	},

	"struct/access/ident": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not an identifier"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A field accessor works out what to do from its own name, so whatever it is " +
				"applied through must be an identifier."
		},
	},

	"struct/access/struct": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a struct"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A field accessor takes a struct instance, made with the struct type's " +
				"'make-' constructor, and this is some other kind of value."
		},
	},

	"struct/access/type": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a struct type"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A field accessor works out what to do from its own name, which has the form " +
				"'<struct>-<field>'. No struct type is registered under the name before the " +
				"last hyphen; most likely the accessor has been bound to some other name."
		},
	},

	"struct/make/arity": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A struct constructor takes exactly one argument per declared field, in " +
				"declaration order."
		},
	},

	"struct/make/ident": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not an identifier"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A struct constructor works out which struct to make from its own name, so " +
				"whatever it is applied through must be an identifier."
		},
	},

	"struct/make/prefix": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a constructor"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A struct constructor works out which struct to make from its own name, which " +
				"has the form 'make-<struct>'. This one has been bound to a name without the " +
				"'make-' prefix, so it can no longer tell which struct it is for."
		},
	},

	"struct/make/type": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string) + " is not a struct type"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A struct constructor works out which struct to make from its own name, which " +
				"has the form 'make-<struct>'. No struct type is registered under the name " +
				"after 'make-'; most likely the constructor has been bound to some other name."
		},
	},

	"struct/pred/arity": {
		Message: func(tok token.Token, args ...any) string {
			return "Expected " + strconv.Itoa(args[0].(int)) + " arg(s), found " + strconv.Itoa(args[1].(int))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A struct predicate takes exactly one argument, the value whose type is in " +
				"question."
		},
	},
}

func blame(errors Errors, pos int, args ...string) string {
	if pos == 0 {
		return ""
	}
	for _, v := range args {
		if errors[pos-1].ErrorId == v {
			very := ""
			if (errors[pos].Token.Line - errors[pos-1].Token.Line) <= 1 {
				very = "very "
			}
			return "\n\nIn this case the problem is " + very + "likely a knock-on effect of the previous error ([" +
				strconv.Itoa(pos-1) + "] " + errors[pos-1].Inspect(ViewStdOut) + ".)"
		}
	}
	return ""
}
