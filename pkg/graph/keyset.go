package graph

import (
	"github.com/tidwall/btree"
)

// KeySet is an ordered set of node keys.
type KeySet struct {
	tree *btree.BTreeG[NodeKey]
}

func lessKey(a, b NodeKey) bool {
	return a < b
}

// NewKeySet returns a set holding the given keys.
func NewKeySet(keys ...NodeKey) *KeySet {
	set := &KeySet{tree: btree.NewBTreeG(lessKey)}

	for _, key := range keys {
		set.Add(key)
	}

	return set
}

// Add inserts key and reports whether it was not already present.
func (set *KeySet) Add(key NodeKey) bool {
	_, replaced := set.tree.Set(key)
	return !replaced
}

// Contains reports whether key is in the set.
func (set *KeySet) Contains(key NodeKey) bool {
	if set == nil {
		return false
	}

	_, ok := set.tree.Get(key)

	return ok
}

// Len returns the number of keys.
func (set *KeySet) Len() int {
	if set == nil {
		return 0
	}

	return set.tree.Len()
}

// Keys returns the keys in ascending order.
func (set *KeySet) Keys() []NodeKey {
	if set == nil {
		return nil
	}

	return set.tree.Items()
}

// Strings returns the keys in ascending order as plain strings.
func (set *KeySet) Strings() []string {
	strs := make([]string, 0, set.Len())

	set.Each(func(key NodeKey) bool {
		strs = append(strs, string(key))
		return true
	})

	return strs
}

// Each calls fn for every key in ascending order until fn returns false.
func (set *KeySet) Each(fn func(key NodeKey) bool) {
	if set == nil {
		return
	}

	set.tree.Scan(fn)
}

// Clone returns an independent copy of the set.
func (set *KeySet) Clone() *KeySet {
	if set == nil {
		return NewKeySet()
	}

	return &KeySet{tree: set.tree.Copy()}
}

// Union returns a new set with the keys of both sets.
func (set *KeySet) Union(other *KeySet) *KeySet {
	result := set.Clone()

	other.Each(func(key NodeKey) bool {
		result.Add(key)
		return true
	})

	return result
}

// Intersect returns a new set with the keys present in both sets.
func (set *KeySet) Intersect(other *KeySet) *KeySet {
	result := NewKeySet()

	small, large := set, other
	if small.Len() > large.Len() {
		small, large = large, small
	}

	small.Each(func(key NodeKey) bool {
		if large.Contains(key) {
			result.Add(key)
		}

		return true
	})

	return result
}

// Difference returns a new set with the keys of set that are not in other.
func (set *KeySet) Difference(other *KeySet) *KeySet {
	result := NewKeySet()

	set.Each(func(key NodeKey) bool {
		if !other.Contains(key) {
			result.Add(key)
		}

		return true
	})

	return result
}

// Equal reports whether both sets hold the same keys.
func (set *KeySet) Equal(other *KeySet) bool {
	if set.Len() != other.Len() {
		return false
	}

	equal := true

	set.Each(func(key NodeKey) bool {
		equal = other.Contains(key)
		return equal
	})

	return equal
}
