// Package graph defines the read-only view of an asset dependency graph that selections are evaluated against.
package graph

import "sort"

// KindTagPrefix is the reserved tag namespace kind labels are exposed under.
const KindTagPrefix = "dagster/kind/"

// NodeKey uniquely identifies a node in the graph.
type NodeKey string

// Node holds the attributes a selection can match on.
type Node struct {
	Tags         map[string]string
	Key          NodeKey
	Group        string
	CodeLocation string
	Owners       []string
	Kinds        []string
	// External marks a source node that is referenced as a dependency but not defined.
	External bool
}

// Graph is the read-only view consumed by the evaluator. Any returned error is treated as fatal.
type Graph interface {
	// Keys returns every node key in the graph.
	Keys() ([]NodeKey, error)
	// Node returns the node for the given key.
	Node(key NodeKey) (*Node, error)
	// Upstream returns the nodes the given node depends on.
	Upstream(key NodeKey) ([]NodeKey, error)
	// Downstream returns the nodes depending on the given node.
	Downstream(key NodeKey) ([]NodeKey, error)
}

// AllTags returns the node tags merged with its kinds, which appear as `dagster/kind/<kind>` with an empty value.
func (node *Node) AllTags() map[string]string {
	tags := make(map[string]string, len(node.Tags)+len(node.Kinds))

	for key, val := range node.Tags {
		tags[key] = val
	}

	for _, kind := range node.Kinds {
		if _, ok := tags[KindTagPrefix+kind]; !ok {
			tags[KindTagPrefix+kind] = ""
		}
	}

	return tags
}

// HasOwner reports whether name is one of the node owners.
func (node *Node) HasOwner(name string) bool {
	for _, owner := range node.Owners {
		if owner == name {
			return true
		}
	}

	return false
}

// HasKind reports whether the node carries the given kind label.
func (node *Node) HasKind(kind string) bool {
	for _, k := range node.Kinds {
		if k == kind {
			return true
		}
	}

	return false
}

// TagKeys returns the sorted tag keys, kinds included.
func (node *Node) TagKeys() []string {
	tags := node.AllTags()
	keys := make([]string, 0, len(tags))

	for key := range tags {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
