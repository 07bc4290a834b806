// Package facts provides the provenance-tracked fact store used by a single
// inference run.
package facts

import (
	"sort"

	"github.com/aretw0/deduce/pkg/domain"
)

type entry struct {
	tag        string
	provenance domain.Provenance
}

// Store is a set of normalized facts, each labelled with the provenance it
// was first added with. A Store belongs to exactly one run and is not safe
// for concurrent use.
type Store struct {
	facts map[string]entry
}

// New creates an empty store.
func New() *Store {
	return &Store{facts: make(map[string]entry)}
}

// NewFromFacts creates a store seeded with facts under the given tag.
func NewFromFacts(facts []string, tag string) *Store {
	s := New()
	s.Extend(facts, tag)
	return s
}

// Add inserts fact with the given provenance tag and reports whether it was new.
// Empty facts are ignored. Re-adding a present fact never changes its
// provenance: the first writer wins.
func (s *Store) Add(fact, tag string) bool {
	f := domain.NormalizeFact(fact)
	if f == "" {
		return false
	}
	if _, ok := s.facts[f]; ok {
		return false
	}
	s.facts[f] = entry{tag: tag, provenance: domain.Classify(tag)}
	return true
}

// Extend adds facts in order and returns how many were new.
func (s *Store) Extend(facts []string, tag string) int {
	n := 0
	for _, f := range facts {
		if s.Add(f, tag) {
			n++
		}
	}
	return n
}

// Contains reports whether the normalized fact is present.
func (s *Store) Contains(fact string) bool {
	_, ok := s.facts[domain.NormalizeFact(fact)]
	return ok
}

// ContainsAll reports whether every fact is present. An empty list is
// trivially contained.
func (s *Store) ContainsAll(facts []string) bool {
	for _, f := range facts {
		if !s.Contains(f) {
			return false
		}
	}
	return true
}

// Provenance returns the category recorded when fact was added, or
// domain.ProvenanceUnknown if the fact is absent.
func (s *Store) Provenance(fact string) domain.Provenance {
	e, ok := s.facts[domain.NormalizeFact(fact)]
	if !ok {
		return domain.ProvenanceUnknown
	}
	return e.provenance
}

// Tag returns the raw provenance tag recorded when fact was added.
func (s *Store) Tag(fact string) (string, bool) {
	e, ok := s.facts[domain.NormalizeFact(fact)]
	return e.tag, ok
}

// Len returns the number of facts.
func (s *Store) Len() int {
	return len(s.facts)
}

// Snapshot returns the facts sorted lexicographically.
func (s *Store) Snapshot() []string {
	out := make([]string, 0, len(s.facts))
	for f := range s.facts {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ProvenanceMap returns the provenance of every fact.
func (s *Store) ProvenanceMap() map[string]domain.Provenance {
	out := make(map[string]domain.Provenance, len(s.facts))
	for f, e := range s.facts {
		out[f] = e.provenance
	}
	return out
}
