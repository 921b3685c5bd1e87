package selection

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/assetsel/internal/errors"
)

// ErrorCode categorizes lex and parse errors for hint lookup.
type ErrorCode int

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodeIllegalCharacter
	ErrorCodeUnterminatedString
	ErrorCodeEmptyExpression
	ErrorCodeUnexpectedToken
	ErrorCodeUnexpectedEOF
	ErrorCodeMissingOperand
	ErrorCodeMissingOperator
	ErrorCodeMissingClosingParen
	ErrorCodeUnmatchedClosingParen
	ErrorCodeMissingValue
	ErrorCodeMissingAttribute
	ErrorCodeMissingArgument
	ErrorCodeUnexpectedTagValue
	ErrorCodeUnknownAttribute
	ErrorCodeUnknownFunction
	ErrorCodeMalformedTraversal
)

var errorTitles = map[ErrorCode]string{
	ErrorCodeIllegalCharacter:      "Invalid character",
	ErrorCodeUnterminatedString:    "Unterminated string",
	ErrorCodeEmptyExpression:       "Empty selection",
	ErrorCodeUnexpectedToken:       "Unexpected token",
	ErrorCodeUnexpectedEOF:         "Unexpected end of selection",
	ErrorCodeMissingOperand:        "Missing operand",
	ErrorCodeMissingOperator:       "Missing operator",
	ErrorCodeMissingClosingParen:   "Unclosed parenthesis",
	ErrorCodeUnmatchedClosingParen: "Unmatched parenthesis",
	ErrorCodeMissingValue:          "Missing value",
	ErrorCodeMissingAttribute:      "Missing attribute",
	ErrorCodeMissingArgument:       "Missing function argument",
	ErrorCodeUnexpectedTagValue:    "Unexpected value",
	ErrorCodeUnknownAttribute:      "Unknown attribute",
	ErrorCodeUnknownFunction:       "Unknown function",
	ErrorCodeMalformedTraversal:    "Malformed traversal",
}

// Title returns a short human readable label for the code.
func (code ErrorCode) Title() string {
	if title, ok := errorTitles[code]; ok {
		return title
	}

	return "Invalid selection"
}

// LexError is returned when the input contains an invalid character or an unterminated quoted string.
type LexError struct {
	Message      string
	Query        string
	TokenLiteral string
	Position     int
	ErrorCode    ErrorCode
}

func (e *LexError) Error() string {
	return fmt.Sprintf("Lex error at position %d: %s", e.Position, e.Message)
}

func newLexError(query string, tok Token) error {
	lexErr := &LexError{
		Query:        query,
		TokenLiteral: tok.Literal,
		Position:     tok.Position,
		ErrorCode:    ErrorCodeIllegalCharacter,
		Message:      fmt.Sprintf("invalid character %q", tok.Literal),
	}

	if strings.HasPrefix(tok.Literal, `"`) {
		lexErr.ErrorCode = ErrorCodeUnterminatedString
		lexErr.Message = "unterminated quoted string"
	}

	return errors.New(lexErr)
}

// ParseError represents a grammar violation.
type ParseError struct {
	Title        string
	Message      string
	Expected     string // What the parser was looking for, when known
	Found        string // The literal that was found, empty at end of input
	Query        string // Original selection string
	TokenLiteral string // The problematic token
	Position     int
	TokenLength  int       // For underline width
	ErrorCode    ErrorCode // For hint lookup
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error at position %d: %s", e.Position, e.Message)
}

// NewParseError creates a new ParseError for the given token.
func NewParseError(code ErrorCode, message string, tok Token) error {
	return errors.New(newParseError(code, message, tok))
}

func newParseError(code ErrorCode, message string, tok Token) *ParseError {
	found := tok.Literal
	if tok.Type == EOF {
		found = ""
	}

	return &ParseError{
		Title:        code.Title(),
		Message:      message,
		Found:        found,
		TokenLiteral: found,
		Position:     tok.Position,
		TokenLength:  tok.Length(),
		ErrorCode:    code,
	}
}

// EvaluationError is returned when the graph view fails during evaluation.
type EvaluationError struct {
	Cause   error
	Message string
}

func (e *EvaluationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Evaluation error: %s: %v", e.Message, e.Cause)
	}

	return "Evaluation error: " + e.Message
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

// NewEvaluationErrorWithCause creates a new EvaluationError with the given message and cause.
func NewEvaluationErrorWithCause(message string, cause error) error {
	return errors.New(&EvaluationError{Message: message, Cause: cause})
}

// IsRejected reports whether err means the selection string itself was rejected.
func IsRejected(err error) bool {
	var (
		lexErr   *LexError
		parseErr *ParseError
	)

	return errors.As(err, &lexErr) || errors.As(err, &parseErr)
}

// withQuery fills in the query of a lex or parse error.
func withQuery(err error, query string) error {
	var (
		lexErr   *LexError
		parseErr *ParseError
	)

	if errors.As(err, &parseErr) {
		parseErr.Query = query
	}

	if errors.As(err, &lexErr) {
		lexErr.Query = query
	}

	return err
}
