package selection

import (
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/pkg/graph"
)

// BuildOption configures Build.
type BuildOption func(*builder)

// WithIncludeSources sets whether `*` and `not` cover external source nodes. Defaults to true.
func WithIncludeSources(include bool) BuildOption {
	return func(b *builder) {
		b.includeSources = include
	}
}

type builder struct {
	includeSources bool
}

// Build translates a syntax tree into a Selection.
func Build(expr Expression, opts ...BuildOption) (Selection, error) {
	b := &builder{includeSources: true}

	for _, opt := range opts {
		opt(b)
	}

	return b.build(expr)
}

// ParseSelection tokenizes, parses and builds text in one call.
func ParseSelection(text string, opts ...BuildOption) (Selection, error) {
	expr, err := Parse(text)
	if err != nil {
		return nil, err
	}

	return Build(expr, opts...)
}

func (b *builder) build(expr Expression) (Selection, error) {
	switch node := expr.(type) {
	case *WildcardExpression:
		return All(b.includeSources), nil
	case *AttributeExpression:
		return b.buildAttribute(node)
	case *FunctionExpression:
		arg, err := b.build(node.Arg)
		if err != nil {
			return nil, err
		}

		switch node.Name {
		case FunctionSinks:
			return Sinks(arg), nil
		case FunctionRoots:
			return Roots(arg), nil
		}

		return nil, errors.Errorf("unknown function %q", node.Name)
	case *PrefixExpression:
		right, err := b.build(node.Right)
		if err != nil {
			return nil, err
		}

		if b.includeSources {
			return Not(right), nil
		}

		return And(All(false), Not(right)), nil
	case *InfixExpression:
		left, err := b.build(node.Left)
		if err != nil {
			return nil, err
		}

		right, err := b.build(node.Right)
		if err != nil {
			return nil, err
		}

		switch node.Operator {
		case "and":
			return And(left, right), nil
		case "or":
			return Or(left, right), nil
		}

		return nil, errors.Errorf("unknown operator %q", node.Operator)
	case *GroupExpression:
		return b.build(node.Inner)
	case *GraphExpression:
		return b.buildTraversal(node)
	case nil:
		return nil, errors.New("cannot build a selection from an empty expression")
	}

	return nil, errors.Errorf("unsupported expression type %T", expr)
}

func (b *builder) buildAttribute(node *AttributeExpression) (Selection, error) {
	switch node.Attribute {
	case AttributeKey:
		return Assets(graph.NodeKey(node.Value)), nil
	case AttributeKeySubstring:
		return KeySubstring(node.Value), nil
	case AttributeTag:
		return Tag(node.Value, node.TagValue), nil
	case AttributeOwner:
		return Owner(node.Value), nil
	case AttributeGroup:
		return Groups(node.Value), nil
	case AttributeKind:
		return Tag(graph.KindTagPrefix+node.Value, ""), nil
	case AttributeCodeLocation:
		return CodeLocation(node.Value), nil
	}

	return nil, errors.Errorf("unknown attribute %q", node.Attribute)
}

// buildTraversal builds the target once and shares it between both directions.
func (b *builder) buildTraversal(node *GraphExpression) (Selection, error) {
	target, err := b.build(node.Target)
	if err != nil {
		return nil, err
	}

	switch {
	case node.IncludeUpstream && node.IncludeDownstream:
		return Or(Upstream(target, node.UpstreamDepth), Downstream(target, node.DownstreamDepth)), nil
	case node.IncludeUpstream:
		return Upstream(target, node.UpstreamDepth), nil
	case node.IncludeDownstream:
		return Downstream(target, node.DownstreamDepth), nil
	}

	return target, nil
}
