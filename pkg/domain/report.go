package domain

import (
	"sort"
	"time"
)

// Report bundles a finished run with what a presentation layer needs to
// render it: the user's own facts in input order and the provenance of
// every final fact.
type Report struct {
	ID         string                `json:"id"`
	Catalog    string                `json:"catalog,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	Input      string                `json:"input,omitempty"`
	UserFacts  []string              `json:"user_facts"`
	Goals      []string              `json:"goals,omitempty"`
	Result     Result                `json:"result"`
	Provenance map[string]Provenance `json:"provenance"`
	// Sealed carries the encrypted report when a store encrypts at rest.
	// Only ID, Catalog and CreatedAt are set alongside it.
	Sealed []byte `json:"sealed,omitempty"`
}

// Group returns the final facts having provenance p, sorted.
func (r *Report) Group(p Provenance) []string {
	var out []string
	for _, f := range r.Result.Facts {
		if r.ProvenanceOf(f) == p {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// ProvenanceOf returns the provenance recorded for fact, unknown if absent.
func (r *Report) ProvenanceOf(fact string) Provenance {
	if p, ok := r.Provenance[fact]; ok {
		return p
	}
	return ProvenanceUnknown
}
