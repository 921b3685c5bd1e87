package graph

import (
	"fmt"
	"sort"

	"github.com/gruntwork-io/assetsel/internal/errors"
)

// AssetGraph is an in-memory Graph built from node definitions and their upstream dependencies.
type AssetGraph struct {
	nodes      map[NodeKey]*Node
	upstream   map[NodeKey][]NodeKey
	downstream map[NodeKey][]NodeKey
	order      []NodeKey
}

var _ Graph = (*AssetGraph)(nil)

// ErrUnknownNode is returned when a key is not part of the graph.
type ErrUnknownNode struct {
	Key NodeKey
}

func (err ErrUnknownNode) Error() string {
	return fmt.Sprintf("node %q is not defined in the graph", err.Key)
}

// NewAssetGraph builds a graph from nodes and deps, where deps maps a node to the nodes it depends on.
// Dependencies on undefined keys materialize external source nodes in the code location of the first dependent.
// Duplicate or empty keys, and deps declared for undefined nodes, are all reported together.
func NewAssetGraph(nodes []*Node, deps map[NodeKey][]NodeKey) (*AssetGraph, error) {
	graph := &AssetGraph{
		nodes:      make(map[NodeKey]*Node, len(nodes)),
		upstream:   make(map[NodeKey][]NodeKey, len(nodes)),
		downstream: make(map[NodeKey][]NodeKey, len(nodes)),
	}

	var errs *errors.MultiError

	for _, node := range nodes {
		if node.Key == "" {
			errs = errs.Append(errors.Errorf("asset with empty key in code location %q", node.CodeLocation))
			continue
		}

		if existing, ok := graph.nodes[node.Key]; ok {
			errs = errs.Append(errors.Errorf("asset %q is defined in both %q and %q", node.Key, existing.CodeLocation, node.CodeLocation))
			continue
		}

		graph.nodes[node.Key] = node
		graph.order = append(graph.order, node.Key)
	}

	for _, key := range sortedDepKeys(deps) {
		if _, ok := graph.nodes[key]; !ok {
			errs = errs.Append(errors.Errorf("dependencies declared for undefined asset %q", key))
		}
	}

	defined := len(graph.order)

	for _, key := range graph.order[:defined] {
		node := graph.nodes[key]

		for _, dep := range deps[key] {
			if dep == "" {
				errs = errs.Append(errors.Errorf("asset %q has a dependency with an empty key", key))
				continue
			}

			if _, ok := graph.nodes[dep]; !ok {
				graph.nodes[dep] = &Node{Key: dep, CodeLocation: node.CodeLocation, External: true}
				graph.order = append(graph.order, dep)
			}

			graph.addEdge(dep, key)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return graph, nil
}

// addEdge records that downstream depends on upstream, ignoring repeats.
func (graph *AssetGraph) addEdge(upstream, downstream NodeKey) {
	for _, key := range graph.upstream[downstream] {
		if key == upstream {
			return
		}
	}

	graph.upstream[downstream] = append(graph.upstream[downstream], upstream)
	graph.downstream[upstream] = append(graph.downstream[upstream], downstream)
}

// Keys implements Graph, in declaration order followed by external nodes.
func (graph *AssetGraph) Keys() ([]NodeKey, error) {
	keys := make([]NodeKey, len(graph.order))
	copy(keys, graph.order)

	return keys, nil
}

// Node implements Graph.
func (graph *AssetGraph) Node(key NodeKey) (*Node, error) {
	node, ok := graph.nodes[key]
	if !ok {
		return nil, errors.New(ErrUnknownNode{Key: key})
	}

	return node, nil
}

// Upstream implements Graph.
func (graph *AssetGraph) Upstream(key NodeKey) ([]NodeKey, error) {
	if _, ok := graph.nodes[key]; !ok {
		return nil, errors.New(ErrUnknownNode{Key: key})
	}

	return graph.upstream[key], nil
}

// Downstream implements Graph.
func (graph *AssetGraph) Downstream(key NodeKey) ([]NodeKey, error) {
	if _, ok := graph.nodes[key]; !ok {
		return nil, errors.New(ErrUnknownNode{Key: key})
	}

	return graph.downstream[key], nil
}

// Len returns the number of nodes, external ones included.
func (graph *AssetGraph) Len() int {
	return len(graph.order)
}

// Nodes returns every node in declaration order.
func (graph *AssetGraph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(graph.order))

	for _, key := range graph.order {
		nodes = append(nodes, graph.nodes[key])
	}

	return nodes
}

func sortedDepKeys(deps map[NodeKey][]NodeKey) []NodeKey {
	keys := make([]NodeKey, 0, len(deps))

	for key := range deps {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}
