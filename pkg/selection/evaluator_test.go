package selection_test

import (
	"context"
	"testing"

	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/pkg/graph"
	"github.com/gruntwork-io/assetsel/pkg/log"
	"github.com/gruntwork-io/assetsel/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearGraph returns a -> b -> c, with raw as an external source of a when withSource is set.
func linearGraph(t *testing.T, withSource bool) *graph.AssetGraph {
	t.Helper()

	deps := map[graph.NodeKey][]graph.NodeKey{
		"b": {"a"},
		"c": {"b"},
	}

	if withSource {
		deps["a"] = []graph.NodeKey{"raw"}
	}

	g, err := graph.NewAssetGraph([]*graph.Node{
		{Key: "a", CodeLocation: "etl", Tags: map[string]string{"foo": "bar"}, Owners: []string{"team:billing"}},
		{Key: "b", CodeLocation: "etl", Kinds: []string{"python", "snowflake"}},
		{Key: "c", CodeLocation: "reporting", Group: "my_group"},
	}, deps)
	require.NoError(t, err)

	return g
}

func evaluate(t *testing.T, g graph.Graph, query string, opts ...selection.BuildOption) []string {
	t.Helper()

	sel, err := selection.ParseSelection(query, opts...)
	require.NoError(t, err)

	keys, err := selection.Evaluate(context.Background(), log.Discard(), sel, g)
	require.NoError(t, err)

	return keys.Strings()
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	g := linearGraph(t, false)

	tests := []struct {
		query    string
		expected []string
	}{
		{query: "key:a", expected: []string{"a"}},
		{query: "not key:a", expected: []string{"b", "c"}},
		{query: "key:a and key:b", expected: []string{}},
		{query: "key:a or key:b", expected: []string{"a", "b"}},
		{query: "+key:b", expected: []string{"a", "b"}},
		{query: "key:b+", expected: []string{"b", "c"}},
		{query: "+key:c+", expected: []string{"b", "c"}},
		{query: "key:a++", expected: []string{"a", "b", "c"}},
		{query: "*key:c", expected: []string{"a", "b", "c"}},
		{query: "*key:b*", expected: []string{"a", "b", "c"}},
		{query: "sinks(*key:a*)", expected: []string{"c"}},
		{query: "roots(*key:c)", expected: []string{"a"}},
		{query: "sinks(key:a or key:c)", expected: []string{"a", "c"}},
		{query: "key_substring:a", expected: []string{"a"}},
		{query: "tag:foo", expected: []string{"a"}},
		{query: "tag:foo=bar", expected: []string{"a"}},
		{query: "tag:foo=baz", expected: []string{}},
		{query: `owner:"team:billing"`, expected: []string{"a"}},
		{query: "group:my_group", expected: []string{"c"}},
		{query: "kind:python", expected: []string{"b"}},
		{query: `tag:"dagster/kind/snowflake"`, expected: []string{"b"}},
		{query: "code_location:reporting", expected: []string{"c"}},
		{query: "code_location:etl*", expected: []string{"a", "b", "c"}},
		{query: "*", expected: []string{"a", "b", "c"}},
		{query: "key:missing", expected: []string{}},
		{query: "key:a or key:missing", expected: []string{"a"}},
		{query: "(key:a or key:c) and not key:c", expected: []string{"a"}},
		{query: "not (key:a or key:c)", expected: []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, evaluate(t, g, tt.query))
		})
	}
}

func TestEvaluateSources(t *testing.T) {
	t.Parallel()

	g := linearGraph(t, true)

	assert.Equal(t, []string{"a", "b", "c", "raw"}, evaluate(t, g, "*"))
	assert.Equal(t, []string{"b", "c", "raw"}, evaluate(t, g, "not key:a"))
	assert.Equal(t, []string{"a", "raw"}, evaluate(t, g, "+key:a"))
	assert.Equal(t, []string{"raw"}, evaluate(t, g, "roots(*)"))

	assert.Equal(t, []string{"a", "b", "c"}, evaluate(t, g, "*", selection.WithIncludeSources(false)))
	assert.Equal(t, []string{"b", "c"}, evaluate(t, g, "not key:a", selection.WithIncludeSources(false)))
	assert.Equal(t, []string{"a"}, evaluate(t, g, "roots(*)", selection.WithIncludeSources(false)))
}

func TestEvaluateKindSelection(t *testing.T) {
	t.Parallel()

	keys, err := selection.Evaluate(context.Background(), log.Discard(), selection.Kind("snowflake"), linearGraph(t, false))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys.Strings())
}

func TestEvaluateProperties(t *testing.T) {
	t.Parallel()

	g := linearGraph(t, true)
	ctx := context.Background()

	eval := func(t *testing.T, sel selection.Selection) *graph.KeySet {
		t.Helper()

		keys, err := selection.Evaluate(ctx, log.Discard(), sel, g)
		require.NoError(t, err)

		return keys
	}

	samples := []selection.Selection{
		selection.Assets("a"),
		selection.Assets("b", "missing"),
		selection.Tag("foo", ""),
		selection.Downstream(selection.Assets("a"), 1),
		selection.Or(selection.Assets("c"), selection.Assets("raw")),
		selection.All(false),
	}

	for _, s := range samples {
		t.Run(s.String(), func(t *testing.T) {
			t.Parallel()

			base := eval(t, s)

			assert.True(t, eval(t, selection.Upstream(s, 0)).Equal(base), "upstream depth 0 is identity")
			assert.True(t, eval(t, selection.Downstream(s, 0)).Equal(base), "downstream depth 0 is identity")
			assert.True(t, eval(t, selection.Not(selection.Not(s))).Equal(base), "double complement")

			assert.Subset(t, base.Strings(), eval(t, selection.Sinks(s)).Strings())
			assert.Subset(t, base.Strings(), eval(t, selection.Roots(s)).Strings())

			for _, other := range samples {
				assert.True(t, eval(t, selection.And(s, other)).Equal(eval(t, selection.And(other, s))))
				assert.True(t, eval(t, selection.Or(s, other)).Equal(eval(t, selection.Or(other, s))))

				for _, third := range samples[:2] {
					assert.True(t, eval(t, selection.And(selection.And(s, other), third)).Equal(eval(t, selection.And(s, selection.And(other, third)))))
					assert.True(t, eval(t, selection.Or(selection.Or(s, other), third)).Equal(eval(t, selection.Or(s, selection.Or(other, third)))))
				}
			}
		})
	}
}

// countingGraph wraps a graph, counting adjacency reads and optionally failing them.
type countingGraph struct {
	graph.Graph
	err                error
	downstream         map[graph.NodeKey][]graph.NodeKey
	upstreamCalls      int
	overrideDownstream bool
}

func (g *countingGraph) Upstream(key graph.NodeKey) ([]graph.NodeKey, error) {
	g.upstreamCalls++

	if g.err != nil {
		return nil, g.err
	}

	return g.Graph.Upstream(key)
}

func (g *countingGraph) Downstream(key graph.NodeKey) ([]graph.NodeKey, error) {
	if g.overrideDownstream {
		return g.downstream[key], nil
	}

	return g.Graph.Downstream(key)
}

func TestEvaluateMemoizesSharedSelections(t *testing.T) {
	t.Parallel()

	g := &countingGraph{Graph: linearGraph(t, false)}

	shared := selection.Upstream(selection.Assets("c"), selection.Unbounded)

	keys, err := selection.Evaluate(context.Background(), log.Discard(), selection.And(shared, selection.Or(shared, selection.Sinks(shared))), g)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys.Strings())

	// c, b and a are each expanded once
	assert.Equal(t, 3, g.upstreamCalls)
}

func TestEvaluateCyclicAdjacency(t *testing.T) {
	t.Parallel()

	// c points back at a downstream, closing a cycle
	g := &countingGraph{
		Graph:              linearGraph(t, false),
		overrideDownstream: true,
		downstream: map[graph.NodeKey][]graph.NodeKey{
			"a": {"b"},
			"b": {"c"},
			"c": {"a"},
		},
	}

	assert.Equal(t, []string{"a", "b", "c"}, evaluate(t, g, "key:a*"))
	assert.Equal(t, []string{}, evaluate(t, g, "sinks(*)"))
}

func TestEvaluateGraphFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("graph store unavailable")
	g := &countingGraph{Graph: linearGraph(t, false), err: cause}

	sel, err := selection.ParseSelection("+key:b")
	require.NoError(t, err)

	keys, err := selection.Evaluate(context.Background(), log.Discard(), sel, g)
	require.Error(t, err)
	assert.Nil(t, keys)

	var evalErr *selection.EvaluationError
	require.True(t, errors.As(err, &evalErr))
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "upstream neighbors")
	assert.False(t, selection.IsRejected(err))
}

func TestEvaluateCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sel, err := selection.ParseSelection("key:a*")
	require.NoError(t, err)

	_, err = selection.Evaluate(ctx, log.Discard(), sel, linearGraph(t, false))
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, errors.IsContextCanceled(err))
}

func TestEvaluateDoesNotMutateSelection(t *testing.T) {
	t.Parallel()

	sel, err := selection.ParseSelection("sinks(*key:b*) or not tag:foo")
	require.NoError(t, err)

	before := sel.String()
	g := linearGraph(t, false)

	first, err := selection.Evaluate(context.Background(), log.Discard(), sel, g)
	require.NoError(t, err)

	second, err := selection.Evaluate(context.Background(), log.Discard(), sel, g)
	require.NoError(t, err)

	assert.Equal(t, before, sel.String())
	assert.True(t, first.Equal(second))
}
