package enumber

import "encoding/json"

// Set is a collection of distinct codes that remembers insertion order.
//
// The zero value is an empty set ready for use. A Set is not safe for
// concurrent mutation.
type Set struct {
	codes []Code
	index map[Code]struct{}
}

// NewSet returns a set holding the given codes, duplicates dropped.
func NewSet(codes ...Code) Set {
	var s Set
	for _, c := range codes {
		s.Add(c)
	}
	return s
}

// Add inserts c and reports whether it was not already present.
func (s *Set) Add(c Code) bool {
	if s.index == nil {
		s.index = make(map[Code]struct{})
	}
	if _, ok := s.index[c]; ok {
		return false
	}
	s.index[c] = struct{}{}
	s.codes = append(s.codes, c)
	return true
}

// Contains reports whether c is a member of the set.
func (s Set) Contains(c Code) bool {
	_, ok := s.index[c]
	return ok
}

// Len returns the number of codes in the set.
func (s Set) Len() int {
	return len(s.codes)
}

// Codes returns the members in first-seen order. The slice is a copy.
func (s Set) Codes() []Code {
	out := make([]Code, len(s.codes))
	copy(out, s.codes)
	return out
}

// Strings returns the members as plain strings in first-seen order.
func (s Set) Strings() []string {
	out := make([]string, len(s.codes))
	for i, c := range s.codes {
		out[i] = string(c)
	}
	return out
}

// Equal reports whether both sets hold the same members, ignoring order.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, c := range s.codes {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as an array of code strings.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}
