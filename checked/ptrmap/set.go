package ptrmap

import "github.com/joshuapare/checkedref/checked"

// Set is a Map with no values: a collection of pointees keyed by
// identity. The zero value is an empty set ready for use.
type Set[T checked.Pointee] struct {
	m Map[T, struct{}]
}

// NewSet returns a Set pre-sized for about capHint members.
func NewSet[T checked.Pointee](capHint int) *Set[T] {
	return &Set[T]{m: *NewMap[T, struct{}](capHint)}
}

// Add inserts t, charging one increment on first insertion. Reports
// whether t was newly added.
func (s *Set[T]) Add(t T) bool {
	if s.m.Has(t) {
		return false
	}
	s.m.Put(t, struct{}{})
	return true
}

// Has reports membership.
func (s *Set[T]) Has(t T) bool {
	return s.m.Has(t)
}

// Remove deletes t, releasing its increment, and reports whether it was
// a member.
func (s *Set[T]) Remove(t T) bool {
	return s.m.Delete(t)
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return s.m.Len()
}

// Range calls fn for every member until it returns false.
func (s *Set[T]) Range(fn func(T) bool) {
	s.m.Range(func(t T, _ struct{}) bool {
		return fn(t)
	})
}

// Reset releases every member's increment and empties the set.
func (s *Set[T]) Reset() {
	s.m.Reset()
}
