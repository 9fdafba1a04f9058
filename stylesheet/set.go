package stylesheet

import "slices"

// Set is a set of declarations which remembers insertion order.
type Set struct {
	items []string
	index map[string]struct{}
}

func newSet() *Set {
	return &Set{index: make(map[string]struct{})}
}

// Add inserts declaration, returns false when it was already present.
func (s *Set) Add(decl string) bool {
	if _, exists := s.index[decl]; exists {
		return false
	}
	s.index[decl] = struct{}{}
	s.items = append(s.items, decl)
	return true
}

func (s *Set) Has(decl string) bool {
	_, exists := s.index[decl]
	return exists
}

func (s *Set) Len() int {
	return len(s.items)
}

// Items returns declarations in insertion order.
func (s *Set) Items() []string {
	return slices.Clone(s.items)
}
