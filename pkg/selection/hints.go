package selection

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// maxSuggestionDistance bounds how far a typo may be from a known name to be suggested.
const maxSuggestionDistance = 2

// GetHint returns a single consolidated hint for a lex or parse error, or an empty string.
func GetHint(code ErrorCode, token, query string, position int) string {
	switch code {
	case ErrorCodeUnknownAttribute:
		if suggestion := Suggest(token, Attributes); suggestion != "" {
			return fmt.Sprintf("Did you mean '%s:'? Supported attributes: %s", suggestion, strings.Join(Attributes, ", "))
		}

		return "Supported attributes: " + strings.Join(Attributes, ", ")
	case ErrorCodeUnknownFunction:
		if suggestion := Suggest(token, Functions); suggestion != "" {
			return fmt.Sprintf("Did you mean '%s(...)'? Supported functions: %s", suggestion, strings.Join(Functions, ", "))
		}

		return "Supported functions: " + strings.Join(Functions, ", ")
	case ErrorCodeMissingAttribute:
		if suggestion := Suggest(token, Attributes); suggestion != "" {
			return fmt.Sprintf("Did you mean '%s:...'?", suggestion)
		}

		return fmt.Sprintf("Values must follow an attribute. Did you mean 'key:%s'?", quoteValue(token))
	case ErrorCodeMissingArgument:
		return fmt.Sprintf("Functions take a selection argument. e.g. '%s(key:a)'", token)
	case ErrorCodeMissingValue:
		return getMissingValueHint(token, query, position)
	case ErrorCodeMissingOperator:
		return "Combine selections with 'and' or 'or'. e.g. 'key:a or key:b'"
	case ErrorCodeMissingClosingParen:
		return fmt.Sprintf("Did you mean '%s)'?", strings.TrimRight(query, " \t"))
	case ErrorCodeUnmatchedClosingParen:
		return "Remove the ')' or add a matching '('."
	case ErrorCodeMalformedTraversal:
		return "Use one or more '+' for a bounded depth or a single '*' for the full closure on each side. e.g. '++key:a' or 'key:a*'"
	case ErrorCodeUnexpectedTagValue:
		return "Only tag accepts a value after '='. e.g. 'tag:team=billing'"
	case ErrorCodeUnterminatedString:
		return "Close the quoted value with '\"'."
	case ErrorCodeIllegalCharacter:
		return "Quote values containing special characters. e.g. 'key:\"my asset\"'"
	case ErrorCodeUnexpectedEOF, ErrorCodeMissingOperand:
		return "The selection is incomplete. Make sure all parentheses are closed and operators have operands."

	// These have error messages that are pretty self-explanatory and don't need hints.
	case ErrorCodeEmptyExpression, ErrorCodeUnexpectedToken, ErrorCodeUnknown:
		return ""
	}

	return ""
}

// Suggest returns the candidate closest to name by edit distance, if it is close enough.
func Suggest(name string, candidates []string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1

	for _, candidate := range candidates {
		distance := levenshtein.Distance(strings.ToLower(name), candidate, nil)
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}

	return best
}

// getMissingValueHint returns a hint for attributes written without a value.
func getMissingValueHint(token, query string, position int) string {
	before := strings.TrimSpace(query[:min(position, len(query))])

	switch {
	case strings.HasSuffix(before, "="):
		return "Provide the tag value or drop the '='. e.g. 'tag:team=billing' or 'tag:team'"
	case token != "" && !strings.HasSuffix(before, ":"):
		return fmt.Sprintf("Attributes take a value after ':'. e.g. '%s:value'", token)
	}

	return "Quote values containing special characters. e.g. 'key:\"my asset\"'"
}
