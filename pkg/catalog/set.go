package catalog

import "sort"

// Set is the canonical item map, keyed by SKU. A Set published at the end of
// a cycle is never mutated again; readers always see a stable snapshot.
type Set map[string]Item

// NewSet returns an empty canonical set.
func NewSet() Set {
	return make(Set)
}

// Keys returns every SKU in lexicographic order. Reports and tests iterate in
// this order so output is reproducible.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Copy returns a deep copy of the set. Cycles operate on a copy so the
// published snapshot stays untouched while the next one is built.
func (s Set) Copy() Set {
	out := make(Set, len(s))
	for key, item := range s {
		out[key] = item.Copy()
	}
	return out
}

// Items returns the items in lexicographic key order.
func (s Set) Items() []Item {
	items := make([]Item, 0, len(s))
	for _, key := range s.Keys() {
		items = append(items, s[key])
	}
	return items
}
