package vars

import "sort"

// IDSet is an unordered set of variable identifiers. It is the edge
// representation used throughout the dependency graph.
type IDSet map[ID]struct{}

// NewIDSet builds a set from the given identifiers.
func NewIDSet(ids ...ID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts an identifier into the set.
func (s IDSet) Add(id ID) { s[id] = struct{}{} }

// Has reports whether the identifier is in the set.
func (s IDSet) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []ID {
	out := make([]ID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Set is an unordered collection of variables keyed by identifier,
// used for the independent (externally set) and dependent (requested)
// sides of a scheduling request.
type Set struct {
	members map[ID]*Variable
}

// NewSet builds a variable set from the given variables.
func NewSet(vs ...*Variable) *Set {
	s := &Set{members: make(map[ID]*Variable, len(vs))}
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

// Add inserts a variable. It reports whether the variable was newly
// added; re-inserting a member is a no-op.
func (s *Set) Add(v *Variable) bool {
	if _, ok := s.members[v.id]; ok {
		return false
	}
	s.members[v.id] = v
	return true
}

// Has reports whether a variable with the given identifier is a member.
func (s *Set) Has(id ID) bool {
	_, ok := s.members[id]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.members) }

// Sorted returns the members in ascending identifier order.
func (s *Set) Sorted() []*Variable {
	ids := make([]ID, 0, len(s.members))
	for id := range s.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*Variable, len(ids))
	for i, id := range ids {
		out[i] = s.members[id]
	}
	return out
}
