package achievements

import (
	"sort"
)

// Set is the collection of achievements a user has unlocked
type Set map[ID]struct{}

// NewSet builds a set from stored identifiers
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id != "" {
			s[ID(id)] = struct{}{}
		}
	}
	return s
}

func (s Set) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

func (s Set) add(id ID) {
	s[id] = struct{}{}
}

// Clone returns an independent copy of s
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the members in catalog order, followed by any unknown ids
// sorted lexically.
func (s Set) IDs() []ID {
	ids := make([]ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ci, cj := catalogIndex(ids[i]), catalogIndex(ids[j])
		if ci != cj {
			return ci < cj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Strings returns the members as plain strings for persistence
func (s Set) Strings() []string {
	ids := s.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
