package ast

import (
	"bytes"
	"strconv"

	"github.com/tim-hardcastle/Remora/token"
)

// The parser hands the evaluator a tree of SExprs. The String methods
// render re-parseable source, so an SExpr can be shown to the user, quoted,
// or fed back through the reader.

type SExpr interface {
	GetToken() token.Token
	String() string
	sexprNode()
}

type Number struct {
	Token token.Token
	Value float64
}

func (n *Number) GetToken() token.Token { return n.Token }
func (n *Number) String() string        { return strconv.FormatFloat(n.Value, 'f', -1, 64) }
func (n *Number) sexprNode()            {}

type Boolean struct {
	Token token.Token
	Value bool
}

func (b *Boolean) GetToken() token.Token { return b.Token }
func (b *Boolean) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b *Boolean) sexprNode() {}

type String struct {
	Token token.Token
	Value string
}

func (s *String) GetToken() token.Token { return s.Token }
func (s *String) String() string        { return "\"" + s.Value + "\"" }
func (s *String) sexprNode()            {}

// An Identifier whose source spelling ended in "..." carries the marker in
// Variadic; the suffix is already stripped from Value.
type Identifier struct {
	Token    token.Token
	Value    string
	Variadic bool
}

func (i *Identifier) GetToken() token.Token { return i.Token }
func (i *Identifier) String() string {
	if i.Variadic {
		return i.Value + "..."
	}
	return i.Value
}
func (i *Identifier) sexprNode() {}

type List struct {
	Token    token.Token
	Elements []SExpr
}

func (l *List) GetToken() token.Token { return l.Token }
func (l *List) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	for i, el := range l.Elements {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(el.String())
	}
	out.WriteString(")")
	return out.String()
}
func (l *List) sexprNode() {}

type Quoted struct {
	Token token.Token
	Expr  SExpr
}

func (q *Quoted) GetToken() token.Token { return q.Token }
func (q *Quoted) String() string        { return "'" + q.Expr.String() }
func (q *Quoted) sexprNode()            {}

// Nil is the empty-list marker. The reader never produces one, but values
// converted back to expression form use it for the empty list.
type Nil struct {
	Token token.Token
}

func (n *Nil) GetToken() token.Token { return n.Token }
func (n *Nil) String() string        { return "'()" }
func (n *Nil) sexprNode()            {}
