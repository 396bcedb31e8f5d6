package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Literals. Whether an atom is a number, a boolean, or an identifier
	// is the parser's business, not the lexer's.
	ATOM   = "ATOM"
	STRING = "string"

	COMMENT = "COMMENT"

	QUOTE = "'"

	LPAREN = "("
	RPAREN = ")"
	LBRACK = "["
	RBRACK = "]"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
}
