package selection

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/mgutz/ansi"
)

const diagnosticIndent = "     "

// FormatDiagnostic produces a Rust-style error message from a *LexError or *ParseError.
// Any other error is rendered with its Error method.
func FormatDiagnostic(err error, useColor bool) string {
	var (
		lexErr   *LexError
		parseErr *ParseError
	)

	switch {
	case errors.As(err, &parseErr):
		return formatDiagnostic(parseErr.Title, parseErr.Message, parseErr.Query, parseErr.TokenLiteral,
			parseErr.Position, parseErr.TokenLength, parseErr.ErrorCode, useColor)
	case errors.As(err, &lexErr):
		length := len(lexErr.TokenLiteral)
		if lexErr.ErrorCode == ErrorCodeUnterminatedString {
			length = 1
		}

		return formatDiagnostic(lexErr.ErrorCode.Title(), lexErr.Message, lexErr.Query, lexErr.TokenLiteral,
			lexErr.Position, length, lexErr.ErrorCode, useColor)
	case err != nil:
		return err.Error() + "\n"
	}

	return ""
}

func formatDiagnostic(title, message, query, token string, position, length int, code ErrorCode, useColor bool) string {
	var (
		sb    strings.Builder
		paint = func(text, _ string) string { return text }
	)

	if useColor {
		paint = ansi.Color
	}

	// Line 1: Error header with high-level title
	fmt.Fprintf(&sb, "Selection error: %s\n", title)

	// Line 2: Location arrow
	fmt.Fprintf(&sb, "%s'%s'\n", paint(" --> ", "blue+b"), query)

	sb.WriteString("\n")

	// Line 4: The query with indentation
	fmt.Fprintf(&sb, "%s%s\n", diagnosticIndent, query)

	// Line 5: Underline under the offending token
	column := utf8.RuneCountInString(query[:min(position, len(query))])
	underline := strings.Repeat("^", max(length, 1))
	fmt.Fprintf(&sb, "%s%s%s %s\n", diagnosticIndent, strings.Repeat(" ", column), paint(underline, "red+b"), message)

	if hint := GetHint(code, token, query, position); hint != "" {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s %s\n", paint("hint:", "cyan+b"), hint)
	}

	return sb.String()
}
