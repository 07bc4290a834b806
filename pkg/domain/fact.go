package domain

import "strings"

// NormalizeFact returns the canonical form of a fact.
// Equality between facts is case and surrounding-whitespace insensitive.
func NormalizeFact(fact string) string {
	return strings.ToLower(strings.TrimSpace(fact))
}

// NormalizeFacts normalizes every fact and drops the ones that end up empty.
// Order is preserved; duplicates are kept.
func NormalizeFacts(facts []string) []string {
	out := make([]string, 0, len(facts))
	for _, f := range facts {
		if n := NormalizeFact(f); n != "" {
			out = append(out, n)
		}
	}
	return out
}
