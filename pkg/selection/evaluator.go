package selection

import (
	"context"
	"fmt"
	"strings"

	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/pkg/graph"
	"github.com/gruntwork-io/assetsel/pkg/log"
)

const (
	directionUpstream   = "upstream"
	directionDownstream = "downstream"
)

// Evaluate resolves sel against g into the set of selected node keys.
// It never mutates sel or g. Sub-selections shared by pointer are evaluated once per call.
// Only a failing graph view or a cancelled context produce an error.
func Evaluate(ctx context.Context, l log.Logger, sel Selection, g graph.Graph) (*graph.KeySet, error) {
	if sel == nil {
		return nil, errors.New("cannot evaluate an empty selection")
	}

	if l == nil {
		l = log.Discard()
	}

	e := &evaluator{
		ctx:    ctx,
		logger: l,
		graph:  g,
		memo:   make(map[Selection]*graph.KeySet),
		nodes:  make(map[graph.NodeKey]*graph.Node),
	}

	var result *graph.KeySet

	err := TraceSelectionEvaluate(ctx, sel.String(), func(ctx context.Context) error {
		e.ctx = ctx

		var err error

		result, err = e.evaluate(sel)

		return err
	})
	if err != nil {
		return nil, err
	}

	l.Debugf("Selection %s matched %d assets", sel, result.Len())

	return result, nil
}

type evaluator struct {
	ctx    context.Context
	logger log.Logger
	graph  graph.Graph
	memo   map[Selection]*graph.KeySet
	nodes  map[graph.NodeKey]*graph.Node
	keys   []graph.NodeKey
	all    *graph.KeySet
}

func (e *evaluator) evaluate(sel Selection) (*graph.KeySet, error) {
	if result, ok := e.memo[sel]; ok {
		return result, nil
	}

	result, err := e.evaluateSelection(sel)
	if err != nil {
		return nil, err
	}

	e.memo[sel] = result

	return result, nil
}

func (e *evaluator) evaluateSelection(sel Selection) (*graph.KeySet, error) {
	switch node := sel.(type) {
	case *AllSelection:
		if node.IncludeSources {
			return e.allKeys()
		}

		return e.filter(func(n *graph.Node) bool { return !n.External })
	case *AssetsSelection:
		return e.evaluateAssets(node)
	case *KeySubstringSelection:
		return e.filter(func(n *graph.Node) bool { return strings.Contains(string(n.Key), node.Text) })
	case *TagSelection:
		return e.filter(func(n *graph.Node) bool {
			val, ok := n.AllTags()[node.Key]
			return ok && (node.Value == "" || val == node.Value)
		})
	case *OwnerSelection:
		return e.filter(func(n *graph.Node) bool { return n.HasOwner(node.Owner) })
	case *GroupsSelection:
		return e.filter(func(n *graph.Node) bool {
			for _, group := range node.Groups {
				if n.Group == group {
					return true
				}
			}

			return false
		})
	case *CodeLocationSelection:
		return e.filter(func(n *graph.Node) bool { return n.CodeLocation == node.Location })
	case *KindSelection:
		return e.filter(func(n *graph.Node) bool { return n.HasKind(node.Kind) })
	case *NotSelection:
		operand, err := e.evaluate(node.Operand)
		if err != nil {
			return nil, err
		}

		all, err := e.allKeys()
		if err != nil {
			return nil, err
		}

		return all.Difference(operand), nil
	case *AndSelection:
		left, right, err := e.evaluatePair(node.Left, node.Right)
		if err != nil {
			return nil, err
		}

		return left.Intersect(right), nil
	case *OrSelection:
		left, right, err := e.evaluatePair(node.Left, node.Right)
		if err != nil {
			return nil, err
		}

		return left.Union(right), nil
	case *UpstreamSelection:
		return e.evaluateTraversal(node.Child, node.Depth, directionUpstream)
	case *DownstreamSelection:
		return e.evaluateTraversal(node.Child, node.Depth, directionDownstream)
	case *SinksSelection:
		return e.evaluateBoundary(node.Child, directionDownstream)
	case *RootsSelection:
		return e.evaluateBoundary(node.Child, directionUpstream)
	}

	return nil, errors.Errorf("unsupported selection type %T", sel)
}

func (e *evaluator) evaluatePair(left, right Selection) (*graph.KeySet, *graph.KeySet, error) {
	leftKeys, err := e.evaluate(left)
	if err != nil {
		return nil, nil, err
	}

	rightKeys, err := e.evaluate(right)
	if err != nil {
		return nil, nil, err
	}

	return leftKeys, rightKeys, nil
}

// evaluateAssets keeps the requested keys that exist in the graph. Unknown keys are dropped.
func (e *evaluator) evaluateAssets(sel *AssetsSelection) (*graph.KeySet, error) {
	all, err := e.allKeys()
	if err != nil {
		return nil, err
	}

	result := graph.NewKeySet()

	for _, key := range sel.Keys {
		if all.Contains(key) {
			result.Add(key)
			continue
		}

		e.logger.Debugf("Asset %q is not in the graph, dropping it from %s", key, sel)
	}

	return result, nil
}

// evaluateTraversal runs a breadth first expansion from the child selection, one frontier level per hop.
func (e *evaluator) evaluateTraversal(child Selection, depth Depth, direction string) (*graph.KeySet, error) {
	start, err := e.evaluate(child)
	if err != nil {
		return nil, err
	}

	if depth == 0 {
		return start, nil
	}

	var result *graph.KeySet

	err = TraceGraphTraverse(e.ctx, direction, depth, start.Len(), func(ctx context.Context) error {
		var traverseErr error

		result, traverseErr = e.traverse(ctx, start, depth, direction)

		return traverseErr
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (e *evaluator) traverse(ctx context.Context, start *graph.KeySet, depth Depth, direction string) (*graph.KeySet, error) {
	visited := start.Clone()
	frontier := start.Keys()

	e.logger.Debugf("Traversing %s from %d assets with depth %s", direction, len(frontier), depth)

	for level := Depth(0); len(frontier) > 0 && (depth == Unbounded || level < depth); level++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.New(err)
		}

		var next []graph.NodeKey

		for _, key := range frontier {
			neighbors, err := e.neighbors(key, direction)
			if err != nil {
				return nil, err
			}

			for _, neighbor := range neighbors {
				if visited.Add(neighbor) {
					next = append(next, neighbor)
				}
			}
		}

		frontier = next
	}

	e.logger.Debugf("Traversal %s reached %d assets", direction, visited.Len())

	return visited, nil
}

// evaluateBoundary keeps the nodes of child without a neighbor inside child in the given direction.
func (e *evaluator) evaluateBoundary(child Selection, direction string) (*graph.KeySet, error) {
	keys, err := e.evaluate(child)
	if err != nil {
		return nil, err
	}

	result := graph.NewKeySet()

	for _, key := range keys.Keys() {
		neighbors, err := e.neighbors(key, direction)
		if err != nil {
			return nil, err
		}

		inside := false

		for _, neighbor := range neighbors {
			if keys.Contains(neighbor) {
				inside = true
				break
			}
		}

		if !inside {
			result.Add(key)
		}
	}

	return result, nil
}

func (e *evaluator) neighbors(key graph.NodeKey, direction string) ([]graph.NodeKey, error) {
	var (
		neighbors []graph.NodeKey
		err       error
	)

	if direction == directionUpstream {
		neighbors, err = e.graph.Upstream(key)
	} else {
		neighbors, err = e.graph.Downstream(key)
	}

	if err != nil {
		return nil, NewEvaluationErrorWithCause(fmt.Sprintf("failed to read %s neighbors of %q", direction, key), err)
	}

	return neighbors, nil
}

// filter returns the keys of every node matching fn.
func (e *evaluator) filter(fn func(node *graph.Node) bool) (*graph.KeySet, error) {
	keys, err := e.graphKeys()
	if err != nil {
		return nil, err
	}

	result := graph.NewKeySet()

	for _, key := range keys {
		node, err := e.node(key)
		if err != nil {
			return nil, err
		}

		if node != nil && fn(node) {
			result.Add(key)
		}
	}

	return result, nil
}

func (e *evaluator) allKeys() (*graph.KeySet, error) {
	if e.all != nil {
		return e.all, nil
	}

	keys, err := e.graphKeys()
	if err != nil {
		return nil, err
	}

	e.all = graph.NewKeySet(keys...)

	return e.all, nil
}

func (e *evaluator) graphKeys() ([]graph.NodeKey, error) {
	if e.keys != nil {
		return e.keys, nil
	}

	keys, err := e.graph.Keys()
	if err != nil {
		return nil, NewEvaluationErrorWithCause("failed to list graph nodes", err)
	}

	if keys == nil {
		keys = []graph.NodeKey{}
	}

	e.keys = keys

	return keys, nil
}

func (e *evaluator) node(key graph.NodeKey) (*graph.Node, error) {
	if node, ok := e.nodes[key]; ok {
		return node, nil
	}

	node, err := e.graph.Node(key)
	if err != nil {
		return nil, NewEvaluationErrorWithCause(fmt.Sprintf("failed to read node %q", key), err)
	}

	e.nodes[key] = node

	return node, nil
}
