package selection

import (
	"sort"
)

// TraversalDirection represents the graph directions a selection expands into.
type TraversalDirection int

const (
	// TraversalNone indicates no graph traversal.
	TraversalNone TraversalDirection = iota
	// TraversalUpstream indicates expanding into dependencies.
	TraversalUpstream
	// TraversalDownstream indicates expanding into dependents.
	TraversalDownstream
	// TraversalBoth indicates expanding in both directions.
	TraversalBoth
)

// String returns a string representation of the TraversalDirection.
func (d TraversalDirection) String() string {
	switch d {
	case TraversalNone:
		return "none"
	case TraversalUpstream:
		return "upstream"
	case TraversalDownstream:
		return "downstream"
	case TraversalBoth:
		return "both"
	default:
		return "unknown"
	}
}

func (d TraversalDirection) with(other TraversalDirection) TraversalDirection {
	if d == TraversalNone || d == other {
		return other
	}

	return TraversalBoth
}

// Analysis describes what evaluating a selection involves.
type Analysis struct {
	// Predicates lists the primitive selection kinds used, e.g. "assets", "tag".
	Predicates []string
	// Functions lists the boundary functions used, e.g. "sinks".
	Functions       []string
	Direction       TraversalDirection
	UpstreamDepth   Depth
	DownstreamDepth Depth
	IsNegated       bool
	// RequiresAdjacency is set when evaluation reads upstream or downstream edges.
	RequiresAdjacency bool
}

// Analyze inspects sel without evaluating it. Depths hold the deepest traversal in each direction, Unbounded dominating.
func Analyze(sel Selection) Analysis {
	info := Analysis{}
	predicates := map[string]struct{}{}
	functions := map[string]struct{}{}

	WalkSelections(sel, func(s Selection) bool {
		switch node := s.(type) {
		case *AssetsSelection:
			predicates["assets"] = struct{}{}
		case *KeySubstringSelection:
			predicates["key_substring"] = struct{}{}
		case *TagSelection:
			predicates["tag"] = struct{}{}
		case *OwnerSelection:
			predicates["owner"] = struct{}{}
		case *GroupsSelection:
			predicates["groups"] = struct{}{}
		case *CodeLocationSelection:
			predicates["code_location"] = struct{}{}
		case *KindSelection:
			predicates["kind"] = struct{}{}
		case *AllSelection:
			predicates["all"] = struct{}{}
		case *NotSelection:
			info.IsNegated = true
		case *UpstreamSelection:
			if node.Depth != 0 {
				info.Direction = info.Direction.with(TraversalUpstream)
				info.UpstreamDepth = maxDepth(info.UpstreamDepth, node.Depth)
				info.RequiresAdjacency = true
			}
		case *DownstreamSelection:
			if node.Depth != 0 {
				info.Direction = info.Direction.with(TraversalDownstream)
				info.DownstreamDepth = maxDepth(info.DownstreamDepth, node.Depth)
				info.RequiresAdjacency = true
			}
		case *SinksSelection:
			functions[FunctionSinks] = struct{}{}
			info.RequiresAdjacency = true
		case *RootsSelection:
			functions[FunctionRoots] = struct{}{}
			info.RequiresAdjacency = true
		}

		return true
	})

	info.Predicates = sortedNames(predicates)
	info.Functions = sortedNames(functions)

	return info
}

func maxDepth(a, b Depth) Depth {
	if a == Unbounded || b == Unbounded {
		return Unbounded
	}

	if a > b {
		return a
	}

	return b
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
