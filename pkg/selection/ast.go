package selection

import (
	"strconv"
	"strings"
)

// Attribute names accepted before ':'.
const (
	AttributeKey          = "key"
	AttributeKeySubstring = "key_substring"
	AttributeTag          = "tag"
	AttributeOwner        = "owner"
	AttributeGroup        = "group"
	AttributeKind         = "kind"
	AttributeCodeLocation = "code_location"
)

// Function names accepted before '('.
const (
	FunctionSinks = "sinks"
	FunctionRoots = "roots"
)

// Attributes lists every supported attribute name.
var Attributes = []string{
	AttributeKey,
	AttributeKeySubstring,
	AttributeTag,
	AttributeOwner,
	AttributeGroup,
	AttributeKind,
	AttributeCodeLocation,
}

// Functions lists every supported function name.
var Functions = []string{
	FunctionSinks,
	FunctionRoots,
}

// Expression is the interface that all syntax tree nodes implement.
type Expression interface {
	// expressionNode is a marker method to distinguish expression nodes.
	expressionNode()
	// String renders the expression in canonical selection syntax.
	String() string
}

// WildcardExpression represents `*`, every asset.
type WildcardExpression struct{}

func (w *WildcardExpression) expressionNode() {}
func (w *WildcardExpression) String() string  { return "*" }

// AttributeExpression represents an attribute predicate (e.g., "key:a" or "tag:foo=bar").
type AttributeExpression struct {
	Attribute string
	Value     string
	// TagValue is only set for `tag:key=value`.
	TagValue    string
	HasTagValue bool
}

func (a *AttributeExpression) expressionNode() {}
func (a *AttributeExpression) String() string {
	str := a.Attribute + ":" + quoteValue(a.Value)
	if a.HasTagValue {
		str += "=" + quoteValue(a.TagValue)
	}

	return str
}

// FunctionExpression represents a function call (e.g., "sinks(key:a)").
type FunctionExpression struct {
	Arg  Expression
	Name string
}

func (f *FunctionExpression) expressionNode() {}
func (f *FunctionExpression) String() string  { return f.Name + "(" + f.Arg.String() + ")" }

// PrefixExpression represents a prefix operator expression (e.g., "not key:a").
type PrefixExpression struct {
	Right    Expression
	Operator string
}

func (p *PrefixExpression) expressionNode() {}
func (p *PrefixExpression) String() string  { return p.Operator + " " + p.Right.String() }

// InfixExpression represents a boolean infix expression (e.g., "key:a or key:b").
type InfixExpression struct {
	Left     Expression
	Right    Expression
	Operator string
}

func (i *InfixExpression) expressionNode() {}
func (i *InfixExpression) String() string {
	return i.Left.String() + " " + i.Operator + " " + i.Right.String()
}

// GroupExpression represents a parenthesized expression.
type GroupExpression struct {
	Inner Expression
}

func (g *GroupExpression) expressionNode() {}
func (g *GroupExpression) String() string  { return "(" + g.Inner.String() + ")" }

// GraphExpression represents a traversal around a target (e.g., "+key:a*").
// An absent side has its Include flag unset; a present side has a depth of at least one, or Unbounded.
type GraphExpression struct {
	Target            Expression
	UpstreamDepth     Depth
	DownstreamDepth   Depth
	IncludeUpstream   bool
	IncludeDownstream bool
}

func (g *GraphExpression) expressionNode() {}
func (g *GraphExpression) String() string {
	var sb strings.Builder

	if g.IncludeUpstream {
		sb.WriteString(depthMarker(g.UpstreamDepth))
	}

	sb.WriteString(g.Target.String())

	if g.IncludeDownstream {
		sb.WriteString(depthMarker(g.DownstreamDepth))
	}

	return sb.String()
}

func depthMarker(depth Depth) string {
	if depth == Unbounded {
		return "*"
	}

	return strings.Repeat("+", int(depth))
}

// quoteValue renders value unquoted when the lexer would read it back as a single identifier.
func quoteValue(value string) string {
	if isIdentifier(value) {
		return value
	}

	return `"` + value + `"`
}

// Depth is a traversal depth in adjacency hops.
type Depth int

// Unbounded expands a traversal until no new nodes are reached.
const Unbounded Depth = -1

func (depth Depth) String() string {
	if depth == Unbounded {
		return "unbounded"
	}

	return strconv.Itoa(int(depth))
}
