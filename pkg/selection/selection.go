package selection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gruntwork-io/assetsel/pkg/graph"
)

// Selection is an immutable expression denoting a graph dependent subset of nodes.
// Values are built once and may be shared between several parents and reused across evaluations.
type Selection interface {
	// selectionNode is a marker method that closes the set of selection types.
	selectionNode()
	// String renders the selection in canonical algebra form.
	String() string
}

// AssetsSelection selects the given keys that exist in the graph.
type AssetsSelection struct {
	Keys []graph.NodeKey
}

// Assets returns a selection of the given keys.
func Assets(keys ...graph.NodeKey) *AssetsSelection {
	return &AssetsSelection{Keys: keys}
}

func (s *AssetsSelection) selectionNode() {}
func (s *AssetsSelection) String() string {
	keys := make([]string, len(s.Keys))
	for i, key := range s.Keys {
		keys[i] = strconv.Quote(string(key))
	}

	return "assets(" + strings.Join(keys, ", ") + ")"
}

// KeySubstringSelection selects nodes whose key contains Text.
type KeySubstringSelection struct {
	Text string
}

// KeySubstring returns a selection of keys containing text.
func KeySubstring(text string) *KeySubstringSelection {
	return &KeySubstringSelection{Text: text}
}

func (s *KeySubstringSelection) selectionNode() {}
func (s *KeySubstringSelection) String() string {
	return fmt.Sprintf("key_substring(%q)", s.Text)
}

// TagSelection selects nodes carrying tag Key. An empty Value matches any value.
type TagSelection struct {
	Key   string
	Value string
}

// Tag returns a selection of nodes tagged key=value, or just key when value is empty.
func Tag(key, value string) *TagSelection {
	return &TagSelection{Key: key, Value: value}
}

func (s *TagSelection) selectionNode() {}
func (s *TagSelection) String() string {
	if s.Value == "" {
		return fmt.Sprintf("tag(%q)", s.Key)
	}

	return fmt.Sprintf("tag(%q, %q)", s.Key, s.Value)
}

// OwnerSelection selects nodes owned by Owner.
type OwnerSelection struct {
	Owner string
}

// Owner returns a selection of nodes owned by name.
func Owner(name string) *OwnerSelection {
	return &OwnerSelection{Owner: name}
}

func (s *OwnerSelection) selectionNode() {}
func (s *OwnerSelection) String() string {
	return fmt.Sprintf("owner(%q)", s.Owner)
}

// GroupsSelection selects nodes in any of Groups.
type GroupsSelection struct {
	Groups []string
}

// Groups returns a selection of nodes in any of the named groups.
func Groups(names ...string) *GroupsSelection {
	return &GroupsSelection{Groups: names}
}

func (s *GroupsSelection) selectionNode() {}
func (s *GroupsSelection) String() string {
	groups := make([]string, len(s.Groups))
	for i, group := range s.Groups {
		groups[i] = strconv.Quote(group)
	}

	return "groups(" + strings.Join(groups, ", ") + ")"
}

// CodeLocationSelection selects nodes defined in Location.
type CodeLocationSelection struct {
	Location string
}

// CodeLocation returns a selection of nodes from the named code location.
func CodeLocation(name string) *CodeLocationSelection {
	return &CodeLocationSelection{Location: name}
}

func (s *CodeLocationSelection) selectionNode() {}
func (s *CodeLocationSelection) String() string {
	return fmt.Sprintf("code_location(%q)", s.Location)
}

// KindSelection selects nodes carrying the kind label Kind.
type KindSelection struct {
	Kind string
}

// Kind returns a selection of nodes with the given kind label.
func Kind(name string) *KindSelection {
	return &KindSelection{Kind: name}
}

func (s *KindSelection) selectionNode() {}
func (s *KindSelection) String() string {
	return fmt.Sprintf("kind(%q)", s.Kind)
}

// AllSelection selects every node, external source nodes only when IncludeSources is set.
type AllSelection struct {
	IncludeSources bool
}

// All returns a selection of every node.
func All(includeSources bool) *AllSelection {
	return &AllSelection{IncludeSources: includeSources}
}

func (s *AllSelection) selectionNode() {}
func (s *AllSelection) String() string {
	return fmt.Sprintf("all(include_sources=%t)", s.IncludeSources)
}

// NotSelection is the complement of Operand within the full node set.
type NotSelection struct {
	Operand Selection
}

// Not returns the complement of s.
func Not(s Selection) *NotSelection {
	return &NotSelection{Operand: s}
}

func (s *NotSelection) selectionNode() {}
func (s *NotSelection) String() string {
	return "not(" + s.Operand.String() + ")"
}

// AndSelection is the intersection of Left and Right.
type AndSelection struct {
	Left  Selection
	Right Selection
}

// And returns the intersection of left and right.
func And(left, right Selection) *AndSelection {
	return &AndSelection{Left: left, Right: right}
}

func (s *AndSelection) selectionNode() {}
func (s *AndSelection) String() string {
	return "and(" + s.Left.String() + ", " + s.Right.String() + ")"
}

// OrSelection is the union of Left and Right.
type OrSelection struct {
	Left  Selection
	Right Selection
}

// Or returns the union of left and right.
func Or(left, right Selection) *OrSelection {
	return &OrSelection{Left: left, Right: right}
}

func (s *OrSelection) selectionNode() {}
func (s *OrSelection) String() string {
	return "or(" + s.Left.String() + ", " + s.Right.String() + ")"
}

// UpstreamSelection expands Child with its dependencies up to Depth hops.
type UpstreamSelection struct {
	Child Selection
	Depth Depth
}

// Upstream returns s together with its dependencies up to depth hops.
func Upstream(s Selection, depth Depth) *UpstreamSelection {
	return &UpstreamSelection{Child: s, Depth: depth}
}

func (s *UpstreamSelection) selectionNode() {}
func (s *UpstreamSelection) String() string {
	return fmt.Sprintf("upstream(%s, depth=%s)", s.Child, s.Depth)
}

// DownstreamSelection expands Child with its dependents up to Depth hops.
type DownstreamSelection struct {
	Child Selection
	Depth Depth
}

// Downstream returns s together with its dependents up to depth hops.
func Downstream(s Selection, depth Depth) *DownstreamSelection {
	return &DownstreamSelection{Child: s, Depth: depth}
}

func (s *DownstreamSelection) selectionNode() {}
func (s *DownstreamSelection) String() string {
	return fmt.Sprintf("downstream(%s, depth=%s)", s.Child, s.Depth)
}

// SinksSelection keeps the nodes of Child without a downstream neighbor in Child.
type SinksSelection struct {
	Child Selection
}

// Sinks returns the sinks of s.
func Sinks(s Selection) *SinksSelection {
	return &SinksSelection{Child: s}
}

func (s *SinksSelection) selectionNode() {}
func (s *SinksSelection) String() string {
	return "sinks(" + s.Child.String() + ")"
}

// RootsSelection keeps the nodes of Child without an upstream neighbor in Child.
type RootsSelection struct {
	Child Selection
}

// Roots returns the roots of s.
func Roots(s Selection) *RootsSelection {
	return &RootsSelection{Child: s}
}

func (s *RootsSelection) selectionNode() {}
func (s *RootsSelection) String() string {
	return "roots(" + s.Child.String() + ")"
}
