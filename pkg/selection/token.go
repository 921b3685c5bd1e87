package selection

// TokenType identifies the class of a token.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	IDENT  // unquoted value or name, e.g. key, raw/orders
	QUOTED // "any text"

	COLON  // :
	EQUAL  // =
	LPAREN // (
	RPAREN // )
	PLUS   // +
	STAR   // *

	AND // and
	OR  // or
	NOT // not
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	IDENT:   "IDENT",
	QUOTED:  "QUOTED",
	COLON:   ":",
	EQUAL:   "=",
	LPAREN:  "(",
	RPAREN:  ")",
	PLUS:    "+",
	STAR:    "*",
	AND:     "and",
	OR:      "or",
	NOT:     "not",
}

var keywords = map[string]TokenType{
	"and": AND,
	"or":  OR,
	"not": NOT,
}

// String returns the printable name of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return "UNKNOWN"
}

// Token is a single lexical unit of a selection string.
type Token struct {
	Literal  string
	Type     TokenType
	Position int // byte offset in the input
}

// NewToken creates a token.
func NewToken(tokenType TokenType, literal string, position int) Token {
	return Token{Type: tokenType, Literal: literal, Position: position}
}

// Length returns the number of input bytes the token spans.
func (tok Token) Length() int {
	switch tok.Type {
	case QUOTED:
		return len(tok.Literal) + 2 //nolint:mnd
	case EOF:
		return 1
	default:
		return len(tok.Literal)
	}
}

// isKeyword reports whether the token is one of the boolean operators.
func (tok Token) isKeyword() bool {
	return tok.Type == AND || tok.Type == OR || tok.Type == NOT
}

// isValue reports whether the token may stand as an attribute value.
// Keywords are accepted so that `key:not` selects the asset named "not".
func (tok Token) isValue() bool {
	return tok.Type == IDENT || tok.Type == QUOTED || tok.isKeyword()
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tokenType, ok := keywords[ident]; ok {
		return tokenType
	}

	return IDENT
}
