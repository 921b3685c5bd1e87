package selection_test

import (
	"testing"

	"github.com/gruntwork-io/assetsel/pkg/selection"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestFormatDiagnosticGolden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing_operator", query: "key:a key:b"},
		{name: "illegal_character", query: "tag:a=x and group:g ~"},
		{name: "malformed_traversal", query: "++*key:a"},
		{name: "unclosed_parenthesis", query: "sinks(key:a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := selection.ParseSelection(tt.query)
			require.Error(t, err)

			g := goldie.New(t,
				goldie.WithFixtureDir("testdata/golden"),
				goldie.WithNameSuffix(".golden"),
			)
			g.Assert(t, tt.name, []byte(selection.FormatDiagnostic(err, false)))
		})
	}
}
