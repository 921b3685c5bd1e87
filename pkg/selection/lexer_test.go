package selection_test

import (
	"testing"

	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []selection.Token
	}{
		{
			name:  "empty input",
			input: "",
			expected: []selection.Token{
				{Type: selection.EOF, Literal: "", Position: 0},
			},
		},
		{
			name:  "attribute",
			input: "key:a",
			expected: []selection.Token{
				{Type: selection.IDENT, Literal: "key", Position: 0},
				{Type: selection.COLON, Literal: ":", Position: 3},
				{Type: selection.IDENT, Literal: "a", Position: 4},
				{Type: selection.EOF, Literal: "", Position: 5},
			},
		},
		{
			name:  "quoted value is verbatim",
			input: `key:"*/a+"`,
			expected: []selection.Token{
				{Type: selection.IDENT, Literal: "key", Position: 0},
				{Type: selection.COLON, Literal: ":", Position: 3},
				{Type: selection.QUOTED, Literal: "*/a+", Position: 4},
				{Type: selection.EOF, Literal: "", Position: 10},
			},
		},
		{
			name:  "traversal markers",
			input: "+key:a*",
			expected: []selection.Token{
				{Type: selection.PLUS, Literal: "+", Position: 0},
				{Type: selection.IDENT, Literal: "key", Position: 1},
				{Type: selection.COLON, Literal: ":", Position: 4},
				{Type: selection.IDENT, Literal: "a", Position: 5},
				{Type: selection.STAR, Literal: "*", Position: 6},
				{Type: selection.EOF, Literal: "", Position: 7},
			},
		},
		{
			name:  "keywords and grouping",
			input: "not key:a and (b or c)",
			expected: []selection.Token{
				{Type: selection.NOT, Literal: "not", Position: 0},
				{Type: selection.IDENT, Literal: "key", Position: 4},
				{Type: selection.COLON, Literal: ":", Position: 7},
				{Type: selection.IDENT, Literal: "a", Position: 8},
				{Type: selection.AND, Literal: "and", Position: 10},
				{Type: selection.LPAREN, Literal: "(", Position: 14},
				{Type: selection.IDENT, Literal: "b", Position: 15},
				{Type: selection.OR, Literal: "or", Position: 17},
				{Type: selection.IDENT, Literal: "c", Position: 20},
				{Type: selection.RPAREN, Literal: ")", Position: 21},
				{Type: selection.EOF, Literal: "", Position: 22},
			},
		},
		{
			name:  "tag with value",
			input: "tag:foo=bar",
			expected: []selection.Token{
				{Type: selection.IDENT, Literal: "tag", Position: 0},
				{Type: selection.COLON, Literal: ":", Position: 3},
				{Type: selection.IDENT, Literal: "foo", Position: 4},
				{Type: selection.EQUAL, Literal: "=", Position: 7},
				{Type: selection.IDENT, Literal: "bar", Position: 8},
				{Type: selection.EOF, Literal: "", Position: 11},
			},
		},
		{
			name:  "identifier character class",
			input: "owner:team@x.com key:raw/orders-v2_1",
			expected: []selection.Token{
				{Type: selection.IDENT, Literal: "owner", Position: 0},
				{Type: selection.COLON, Literal: ":", Position: 5},
				{Type: selection.IDENT, Literal: "team@x.com", Position: 6},
				{Type: selection.IDENT, Literal: "key", Position: 17},
				{Type: selection.COLON, Literal: ":", Position: 20},
				{Type: selection.IDENT, Literal: "raw/orders-v2_1", Position: 21},
				{Type: selection.EOF, Literal: "", Position: 36},
			},
		},
		{
			name:  "byte offsets with multibyte letters",
			input: "key:ünï",
			expected: []selection.Token{
				{Type: selection.IDENT, Literal: "key", Position: 0},
				{Type: selection.COLON, Literal: ":", Position: 3},
				{Type: selection.IDENT, Literal: "ünï", Position: 4},
				{Type: selection.EOF, Literal: "", Position: 9},
			},
		},
		{
			name:  "surrounding whitespace",
			input: "  key \t",
			expected: []selection.Token{
				{Type: selection.IDENT, Literal: "key", Position: 2},
				{Type: selection.EOF, Literal: "", Position: 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, err := selection.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		message  string
		position int
		code     selection.ErrorCode
	}{
		{
			name:     "unterminated quote",
			input:    `key:"abc`,
			position: 4,
			message:  "unterminated quoted string",
			code:     selection.ErrorCodeUnterminatedString,
		},
		{
			name:     "invalid character",
			input:    "key:a!",
			position: 5,
			message:  `invalid character "!"`,
			code:     selection.ErrorCodeIllegalCharacter,
		},
		{
			name:     "comma",
			input:    "key:a,key:b",
			position: 5,
			message:  `invalid character ","`,
			code:     selection.ErrorCodeIllegalCharacter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, err := selection.Tokenize(tt.input)
			require.Error(t, err)
			assert.Nil(t, tokens)

			var lexErr *selection.LexError
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.position, lexErr.Position)
			assert.Equal(t, tt.message, lexErr.Message)
			assert.Equal(t, tt.code, lexErr.ErrorCode)
			assert.Equal(t, tt.input, lexErr.Query)
			assert.True(t, selection.IsRejected(err))
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "IDENT", selection.IDENT.String())
	assert.Equal(t, "and", selection.AND.String())
	assert.Equal(t, "*", selection.STAR.String())
	assert.Equal(t, "UNKNOWN", selection.TokenType(99).String())
}

func TestTokenLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, selection.NewToken(selection.IDENT, "key", 0).Length())
	assert.Equal(t, 5, selection.NewToken(selection.QUOTED, "a b", 0).Length())
	assert.Equal(t, 1, selection.NewToken(selection.EOF, "", 10).Length())
}
