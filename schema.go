package posekit

import (
	"errors"
	"fmt"
)

// Schema is an ordered, duplicate-free list of landmark names. The position
// of a name within the schema is the landmark index used by every other
// type in this package. Schemas are immutable once constructed.
type Schema struct {
	names []string
	index map[string]int
}

// NewSchema builds a schema from an ordered list of landmark names.
// Names must be non-empty and unique; duplicate names would make
// name-to-index lookup ambiguous, so they are rejected outright.
func NewSchema(names []string) (*Schema, error) {
	if len(names) == 0 {
		return nil, errors.New("posekit: schema requires at least one landmark name")
	}
	s := &Schema{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for i, name := range s.names {
		if name == "" {
			return nil, fmt.Errorf("posekit: empty landmark name at index %d", i)
		}
		if prev, ok := s.index[name]; ok {
			return nil, fmt.Errorf("posekit: duplicate landmark %q at indices %d and %d", name, prev, i)
		}
		s.index[name] = i
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on invalid input. Intended for
// package-level schema definitions and tests.
func MustSchema(names ...string) *Schema {
	s, err := NewSchema(names)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of landmarks in the schema.
func (s *Schema) Len() int { return len(s.names) }

// Names returns a copy of the ordered landmark names.
func (s *Schema) Names() []string {
	return append([]string(nil), s.names...)
}

// Name returns the landmark name at index i.
func (s *Schema) Name(i int) string { return s.names[i] }

// Index returns the index of the named landmark and whether it exists.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Has reports whether the named landmark exists in the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}
