package selection

import (
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes a selection string.
type Lexer struct {
	input        string // The input string being tokenized
	position     int    // Current position in input (points to current char)
	readPosition int    // Current reading position in input (after current char)
	ch           rune   // Current char under examination
}

// NewLexer creates a new Lexer for the given input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar() // Initialize by reading the first character

	return l
}

// Tokenize splits text into tokens, the trailing EOF token included.
func Tokenize(text string) ([]Token, error) {
	l := NewLexer(text)

	var tokens []Token

	for {
		tok := l.NextToken()

		if tok.Type == ILLEGAL {
			return nil, newLexError(text, tok)
		}

		tokens = append(tokens, tok)

		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// NextToken reads and returns the next token from the input.
// An unterminated quoted string is returned as an ILLEGAL token holding the rest of the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	var tok Token

	startPosition := l.position

	switch l.ch {
	case 0:
		if l.position < len(l.input) {
			tok = NewToken(ILLEGAL, string(l.ch), startPosition)
			l.readChar()

			return tok
		}

		tok = NewToken(EOF, "", startPosition)
	case ':':
		tok = NewToken(COLON, ":", startPosition)
		l.readChar()
	case '=':
		tok = NewToken(EQUAL, "=", startPosition)
		l.readChar()
	case '(':
		tok = NewToken(LPAREN, "(", startPosition)
		l.readChar()
	case ')':
		tok = NewToken(RPAREN, ")", startPosition)
		l.readChar()
	case '+':
		tok = NewToken(PLUS, "+", startPosition)
		l.readChar()
	case '*':
		tok = NewToken(STAR, "*", startPosition)
		l.readChar()
	case '"':
		tok = l.readQuoted()
	default:
		if isIdentifierChar(l.ch) {
			literal := l.readIdentifier()
			return NewToken(LookupIdent(literal), literal, startPosition)
		}

		tok = NewToken(ILLEGAL, string(l.ch), startPosition)
		l.readChar()
	}

	return tok
}

// readChar advances the lexer's position and updates the current character.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for "NUL", signifies end of input
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1

		return
	}

	r, width := utf8.DecodeRuneInString(l.input[l.readPosition:])

	l.ch = r
	l.position = l.readPosition
	l.readPosition += width
}

// skipWhitespace skips over whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.position < len(l.input) && unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// readIdentifier reads a run of identifier characters.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for l.position < len(l.input) && isIdentifierChar(l.ch) {
		l.readChar()
	}

	return l.input[position:l.position]
}

// readQuoted reads a double quoted string verbatim, without escape processing.
func (l *Lexer) readQuoted() Token {
	startPosition := l.position

	l.readChar() // opening quote

	position := l.position
	for l.ch != '"' {
		if l.position >= len(l.input) {
			return NewToken(ILLEGAL, l.input[startPosition:], startPosition)
		}

		l.readChar()
	}

	literal := l.input[position:l.position]

	l.readChar() // closing quote

	return NewToken(QUOTED, literal, startPosition)
}

// isIdentifierChar returns true if the character can be part of an unquoted value.
func isIdentifierChar(ch rune) bool {
	if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
		return true
	}

	switch ch {
	case '_', '.', '/', '-', '@':
		return true
	}

	return false
}

// isIdentifier reports whether value can be written without quotes.
func isIdentifier(value string) bool {
	if value == "" {
		return false
	}

	for _, ch := range value {
		if !isIdentifierChar(ch) {
			return false
		}
	}

	return LookupIdent(value) == IDENT
}
