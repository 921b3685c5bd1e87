package selection_test

import (
	"testing"

	"github.com/gruntwork-io/assetsel/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	t.Parallel()

	a := selection.Assets("a")
	b := selection.Assets("b")
	c := selection.Assets("c")

	tests := []struct {
		input    string
		expected selection.Selection
	}{
		{input: "*", expected: selection.All(true)},
		{input: "key:a", expected: a},
		{input: `key:"*/a+"`, expected: selection.Assets("*/a+")},
		{input: "key_substring:a", expected: selection.KeySubstring("a")},
		{input: "not key:a", expected: selection.Not(a)},
		{input: "key:a and key:b", expected: selection.And(a, b)},
		{input: "key:a or key:b", expected: selection.Or(a, b)},
		{input: "(key:a)", expected: a},
		{input: "+key:a", expected: selection.Upstream(a, 1)},
		{input: "++key:a", expected: selection.Upstream(a, 2)},
		{input: "key:a+", expected: selection.Downstream(a, 1)},
		{input: "key:a++", expected: selection.Downstream(a, 2)},
		{input: "+key:a+", expected: selection.Or(selection.Upstream(a, 1), selection.Downstream(a, 1))},
		{input: "*key:a", expected: selection.Upstream(a, selection.Unbounded)},
		{input: "key:a*", expected: selection.Downstream(a, selection.Unbounded)},
		{
			input:    "*key:a*",
			expected: selection.Or(selection.Upstream(a, selection.Unbounded), selection.Downstream(a, selection.Unbounded)),
		},
		{
			input:    "key:a* and *key:b",
			expected: selection.And(selection.Downstream(a, selection.Unbounded), selection.Upstream(b, selection.Unbounded)),
		},
		{
			input: "*key:a and key:b* and *key:c*",
			expected: selection.And(
				selection.And(selection.Upstream(a, selection.Unbounded), selection.Downstream(b, selection.Unbounded)),
				selection.Or(selection.Upstream(c, selection.Unbounded), selection.Downstream(c, selection.Unbounded)),
			),
		},
		{input: "sinks(key:a)", expected: selection.Sinks(a)},
		{input: "roots(key:c)", expected: selection.Roots(c)},
		{input: "tag:foo", expected: selection.Tag("foo", "")},
		{input: "tag:foo=bar", expected: selection.Tag("foo", "bar")},
		{input: `owner:"owner@owner.com"`, expected: selection.Owner("owner@owner.com")},
		{input: "owner:owner@owner.com", expected: selection.Owner("owner@owner.com")},
		{input: "group:my_group", expected: selection.Groups("my_group")},
		{input: "kind:my_kind", expected: selection.Tag("dagster/kind/my_kind", "")},
		{input: "code_location:my_location", expected: selection.CodeLocation("my_location")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			sel, err := selection.ParseSelection(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sel)
		})
	}
}

func TestBuildSharesTraversalTarget(t *testing.T) {
	t.Parallel()

	sel, err := selection.ParseSelection("*key:a*")
	require.NoError(t, err)

	or, ok := sel.(*selection.OrSelection)
	require.True(t, ok)

	upstream, ok := or.Left.(*selection.UpstreamSelection)
	require.True(t, ok)

	downstream, ok := or.Right.(*selection.DownstreamSelection)
	require.True(t, ok)

	assert.Same(t, upstream.Child, downstream.Child)
}

func TestBuildWithoutSources(t *testing.T) {
	t.Parallel()

	sel, err := selection.ParseSelection("*", selection.WithIncludeSources(false))
	require.NoError(t, err)
	assert.Equal(t, selection.All(false), sel)

	sel, err = selection.ParseSelection("not key:a", selection.WithIncludeSources(false))
	require.NoError(t, err)
	assert.Equal(t, selection.And(selection.All(false), selection.Not(selection.Assets("a"))), sel)
}

func TestBuildNil(t *testing.T) {
	t.Parallel()

	_, err := selection.Build(nil)
	require.Error(t, err)
}

func TestSelectionString(t *testing.T) {
	t.Parallel()

	a := selection.Assets("a")

	tests := []struct {
		sel      selection.Selection
		expected string
	}{
		{sel: a, expected: `assets("a")`},
		{sel: selection.Assets("a", "b"), expected: `assets("a", "b")`},
		{sel: selection.Tag("foo", ""), expected: `tag("foo")`},
		{sel: selection.Tag("foo", "bar"), expected: `tag("foo", "bar")`},
		{sel: selection.All(true), expected: "all(include_sources=true)"},
		{sel: selection.Groups("x"), expected: `groups("x")`},
		{sel: selection.Kind("python"), expected: `kind("python")`},
		{sel: selection.Not(selection.Owner("o")), expected: `not(owner("o"))`},
		{sel: selection.And(a, selection.CodeLocation("l")), expected: `and(assets("a"), code_location("l"))`},
		{
			sel:      selection.Or(selection.Upstream(a, 1), selection.Downstream(a, selection.Unbounded)),
			expected: `or(upstream(assets("a"), depth=1), downstream(assets("a"), depth=unbounded))`,
		},
		{sel: selection.Sinks(selection.KeySubstring("x")), expected: `sinks(key_substring("x"))`},
		{sel: selection.Roots(a), expected: `roots(assets("a"))`},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.sel.String())
		})
	}
}
