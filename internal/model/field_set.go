package model

import (
	"encoding/json"
	"sort"
)

// FieldSet is an unordered collection of distinct FieldPaths keyed by
// their String form. The zero value is an empty, usable set.
type FieldSet struct {
	paths map[string]FieldPath
}

// NewFieldSet creates a set holding the given paths.
func NewFieldSet(paths ...FieldPath) FieldSet {
	s := FieldSet{paths: make(map[string]FieldPath, len(paths))}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts p and reports whether it was not already present.
// The zero path is ignored.
func (s *FieldSet) Add(p FieldPath) bool {
	if p.IsZero() {
		return false
	}
	if s.paths == nil {
		s.paths = make(map[string]FieldPath)
	}
	key := p.String()
	if _, ok := s.paths[key]; ok {
		return false
	}
	s.paths[key] = p
	return true
}

// Contains reports whether p is in the set.
func (s FieldSet) Contains(p FieldPath) bool {
	_, ok := s.paths[p.String()]
	return ok
}

// Len returns the number of distinct paths.
func (s FieldSet) Len() int {
	return len(s.paths)
}

// Union adds every path of other to s.
func (s *FieldSet) Union(other FieldSet) {
	for _, p := range other.paths {
		s.Add(p)
	}
}

// Sorted returns the paths ordered lexicographically by their String form.
func (s FieldSet) Sorted() []FieldPath {
	keys := s.Strings()
	out := make([]FieldPath, len(keys))
	for i, k := range keys {
		out[i] = s.paths[k]
	}
	return out
}

// Strings returns the String form of every path, sorted.
func (s FieldSet) Strings() []string {
	keys := make([]string, 0, len(s.paths))
	for k := range s.paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON encodes the set as a sorted array of path strings.
func (s FieldSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON decodes an array of path strings.
func (s *FieldSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewFieldSet()
	for _, r := range raw {
		s.Add(ParseFieldPath(r))
	}
	return nil
}
