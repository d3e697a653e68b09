package inputs

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// Set is an ordered set of input declarations keyed by Compare. Adding a value
// equal to an existing entry is a no-op; a value sharing only the name is kept
// as a separate entry. Use Replace when a name must stay unique.
type Set struct {
	tree *treeset.Set
}

// NewSet builds an empty set, optionally seeded with values.
func NewSet(values ...Value) *Set {
	s := &Set{tree: treeset.NewWith(comparator)}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func comparator(a, b any) int {
	return Compare(a.(Value), b.(Value))
}

// Add inserts v and reports whether the set grew. The stored entry keeps its
// default when an equal value is added again.
func (s *Set) Add(v Value) bool {
	if !v.Valid() || s.tree.Contains(v) {
		return false
	}
	s.tree.Add(v)
	return true
}

// Replace drops every entry named v.Name() and inserts v.
func (s *Set) Replace(v Value) {
	if !v.Valid() {
		return
	}
	for _, existing := range s.Named(v.Name()) {
		s.tree.Remove(existing)
	}
	s.tree.Add(v)
}

// Remove deletes the entry equal to v, if any.
func (s *Set) Remove(v Value) {
	s.tree.Remove(v)
}

// Contains reports whether an entry equal to v exists.
func (s *Set) Contains(v Value) bool {
	return s.tree.Contains(v)
}

// Lookup returns the first entry, in set order, whose name matches.
func (s *Set) Lookup(name string) (Value, bool) {
	it := s.tree.Iterator()
	for it.Next() {
		v := it.Value().(Value)
		if v.Name() == name {
			return v, true
		}
	}
	return Value{}, false
}

// Named returns every entry carrying name, in set order.
func (s *Set) Named(name string) []Value {
	var out []Value
	it := s.tree.Iterator()
	for it.Next() {
		v := it.Value().(Value)
		if v.Name() == name {
			out = append(out, v)
		}
	}
	return out
}

func (s *Set) Len() int {
	return s.tree.Size()
}

// Values returns the entries in set order.
func (s *Set) Values() []Value {
	raw := s.tree.Values()
	out := make([]Value, 0, len(raw))
	for _, item := range raw {
		out = append(out, item.(Value))
	}
	return out
}

// Each visits entries in set order until fn returns false.
func (s *Set) Each(fn func(Value) bool) {
	it := s.tree.Iterator()
	for it.Next() {
		if !fn(it.Value().(Value)) {
			return
		}
	}
}
