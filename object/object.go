package object

import (
	"bytes"
	"strconv"

	"src.elv.sh/pkg/persistent/vector"

	"github.com/tim-hardcastle/Remora/ast"
	"github.com/tim-hardcastle/Remora/text"
	"github.com/tim-hardcastle/Remora/token"
)

// How an object is rendered: ViewStdOut is the human form, in which strings
// appear raw; ViewLiteral quotes and escapes them so that output is
// unambiguous.
const (
	ViewStdOut = iota
	ViewLiteral
)

type View = int

type ObjectType string

const (
	BOOLEAN_OBJ   = "bool"
	ERROR_OBJ     = "error"
	FORM_OBJ      = "form"
	INTRINSIC_OBJ = "function"
	LAMBDA_OBJ    = "lambda"
	LIST_OBJ      = "list"
	NUMBER_OBJ    = "num"
	STRING_OBJ    = "str"
	STRUCT_OBJ    = "struct"
	SYMBOL_OBJ    = "symbol"
)

type Object interface {
	Type() ObjectType
	Inspect(view View) string
}

// An intrinsic gets its arguments already evaluated. A form handler gets the
// raw expressions, the callee included, and decides for itself what to
// evaluate; this is the hook that lets define-struct install new forms at
// runtime.
type IntrinsicFn func(env *Environment, args []Object) Object

type FormFn func(env *Environment, tok token.Token, exprs []ast.SExpr) Object

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect(view View) string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect(view View) string {
	if b.Value {
		return "true"
	}
	return "false"
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect(view View) string {
	if view == ViewStdOut {
		return s.Value
	}
	return text.ToEscapedText(s.Value)
}

type Symbol struct {
	Value    string
	Variadic bool
}

func (s *Symbol) Type() ObjectType { return SYMBOL_OBJ }
func (s *Symbol) Inspect(view View) string {
	if s.Variadic {
		return s.Value + "..."
	}
	return s.Value
}

type List struct {
	Elements vector.Vector
}

func (lo *List) Type() ObjectType { return LIST_OBJ }
func (lo *List) Inspect(view View) string {
	var out bytes.Buffer
	out.WriteString("(")
	first := true
	for it := lo.Elements.Iterator(); it.HasElem(); it.Next() {
		if !first {
			out.WriteString(" ")
		}
		out.WriteString(it.Elem().(Object).Inspect(view))
		first = false
	}
	out.WriteString(")")
	return out.String()
}

func (lo *List) Len() int {
	return lo.Elements.Len()
}

func (lo *List) Slice() []Object {
	result := make([]Object, 0, lo.Elements.Len())
	for it := lo.Elements.Iterator(); it.HasElem(); it.Next() {
		result = append(result, it.Elem().(Object))
	}
	return result
}

func ListFromSlice(elements []Object) *List {
	vec := vector.Empty
	for _, el := range elements {
		vec = vec.Conj(el)
	}
	return &List{Elements: vec}
}

// A Lambda captures its parameter names and unevaluated body and nothing
// else. Free identifiers in the body are resolved against whatever
// environment is live when the lambda is applied, not against the scope it
// was made in. This is dynamic scoping; see the remarks in environment.go.
type Lambda struct {
	Params   []string
	Body     ast.SExpr
	Variadic bool
}

func (l *Lambda) Type() ObjectType { return LAMBDA_OBJ }
func (l *Lambda) Inspect(view View) string {
	var out bytes.Buffer
	out.WriteString("(lambda (")
	for i, param := range l.Params {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(param)
	}
	if l.Variadic {
		out.WriteString("...")
	}
	out.WriteString(") ")
	out.WriteString(l.Body.String())
	out.WriteString(")")
	return out.String()
}

type Intrinsic struct {
	Fn IntrinsicFn
}

func (i *Intrinsic) Type() ObjectType         { return INTRINSIC_OBJ }
func (i *Intrinsic) Inspect(view View) string { return "<function>" }

type SpecialForm struct {
	Fn FormFn
}

func (sf *SpecialForm) Type() ObjectType         { return FORM_OBJ }
func (sf *SpecialForm) Inspect(view View) string { return "<procedure>" }

// Fields are stored in the order the struct type declared them; accessors
// find their index through the environment's struct registry.
type StructInstance struct {
	Name   string
	Fields []Object
}

func (si *StructInstance) Type() ObjectType { return STRUCT_OBJ }
func (si *StructInstance) Inspect(view View) string {
	var out bytes.Buffer
	out.WriteString("(make-")
	out.WriteString(si.Name)
	for _, field := range si.Fields {
		out.WriteString(" ")
		out.WriteString(field.Inspect(view))
	}
	out.WriteString(")")
	return out.String()
}

type Error struct {
	ErrorId string
	Message string
	Info    []any
	Trace   []token.Token
	Token   token.Token
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect(view View) string {
	if view == ViewStdOut {
		if len(e.Trace) == 0 {
			return text.ERROR + e.Message + text.PosDescription(e.Token) + "."
		} else {
			return text.RT_ERROR + e.Message + text.PosDescription(e.Token) + "."
		}
	}
	return "error " + text.ToEscapedText(e.Message)
}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	EMPTY = &List{Elements: vector.Empty}
)

func MakeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// Equals is the language's structural equality. Different variants are
// never equal; lambdas, intrinsics, form handlers and errors are not equal
// to anything, themselves included.
func Equals(left, right Object) bool {
	if left.Type() != right.Type() {
		return false
	}
	switch left := left.(type) {
	case *Number:
		return left.Value == right.(*Number).Value
	case *Boolean:
		return left.Value == right.(*Boolean).Value
	case *String:
		return left.Value == right.(*String).Value
	case *Symbol:
		rightSymbol := right.(*Symbol)
		return left.Value == rightSymbol.Value && left.Variadic == rightSymbol.Variadic
	case *List:
		rightList := right.(*List)
		if left.Len() != rightList.Len() {
			return false
		}
		for i := 0; i < left.Len(); i++ {
			leftElement, _ := left.Elements.Index(i)
			rightElement, _ := rightList.Elements.Index(i)
			if !Equals(leftElement.(Object), rightElement.(Object)) {
				return false
			}
		}
		return true
	case *StructInstance:
		rightStruct := right.(*StructInstance)
		if left.Name != rightStruct.Name || len(left.Fields) != len(rightStruct.Fields) {
			return false
		}
		for i := range left.Fields {
			if !Equals(left.Fields[i], rightStruct.Fields[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// FromExpr turns an expression into the value it denotes without evaluating
// it. It cannot fail: identifiers become symbols, quoting unwraps, and the
// nil marker becomes the empty list.
func FromExpr(expr ast.SExpr) Object {
	switch expr := expr.(type) {
	case *ast.Number:
		return &Number{Value: expr.Value}
	case *ast.Boolean:
		return MakeBool(expr.Value)
	case *ast.String:
		return &String{Value: expr.Value}
	case *ast.Identifier:
		return &Symbol{Value: expr.Value, Variadic: expr.Variadic}
	case *ast.List:
		vec := vector.Empty
		for _, element := range expr.Elements {
			vec = vec.Conj(FromExpr(element))
		}
		return &List{Elements: vec}
	case *ast.Quoted:
		return FromExpr(expr.Expr)
	case *ast.Nil:
		return EMPTY
	}
	return EMPTY
}

// ToExpr is the inverse of FromExpr, used by eval and by anything that
// needs to treat a value as code again. Intrinsics and form handlers have
// no expression form; converting one is a reported error, not a crash.
func ToExpr(obj Object, tok token.Token) (ast.SExpr, *Error) {
	switch obj := obj.(type) {
	case *Number:
		return &ast.Number{Token: tok, Value: obj.Value}, nil
	case *Boolean:
		return &ast.Boolean{Token: tok, Value: obj.Value}, nil
	case *String:
		return &ast.String{Token: tok, Value: obj.Value}, nil
	case *Symbol:
		return &ast.Identifier{Token: tok, Value: obj.Value, Variadic: obj.Variadic}, nil
	case *List:
		if obj.Len() == 0 {
			return &ast.Nil{Token: tok}, nil
		}
		elements := make([]ast.SExpr, 0, obj.Len())
		for it := obj.Elements.Iterator(); it.HasElem(); it.Next() {
			element, err := ToExpr(it.Elem().(Object), tok)
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
		return &ast.List{Token: tok, Elements: elements}, nil
	case *Lambda:
		params := make([]ast.SExpr, 0, len(obj.Params))
		for i, param := range obj.Params {
			params = append(params, &ast.Identifier{
				Token:    tok,
				Value:    param,
				Variadic: obj.Variadic && i == len(obj.Params)-1,
			})
		}
		return &ast.List{Token: tok, Elements: []ast.SExpr{
			&ast.Identifier{Token: tok, Value: "lambda"},
			&ast.List{Token: tok, Elements: params},
			obj.Body,
		}}, nil
	case *StructInstance:
		elements := []ast.SExpr{&ast.Identifier{Token: tok, Value: "make-" + obj.Name}}
		for _, field := range obj.Fields {
			element, err := ToExpr(field, tok)
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
		return &ast.List{Token: tok, Elements: elements}, nil
	case *Intrinsic:
		return nil, CreateErr("eval/convert/a", tok, obj.Inspect(ViewStdOut))
	case *SpecialForm:
		return nil, CreateErr("eval/convert/b", tok, obj.Inspect(ViewStdOut))
	}
	return nil, CreateErr("eval/convert/c", tok, obj.Inspect(ViewStdOut))
}
