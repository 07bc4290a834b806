package normalize

import (
	"slices"
	"strings"

	"github.com/aretw0/deduce/pkg/domain"
	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCutoff is the minimum similarity ratio for an approximate match.
const DefaultCutoff = 0.82

// MatchKind records how a token was resolved.
type MatchKind string

const (
	MatchSynonym MatchKind = "synonym"
	MatchExact   MatchKind = "exact"
	MatchFuzzy   MatchKind = "fuzzy"
	MatchRaw     MatchKind = "raw"
)

// Mapping is the resolution of a single input token.
type Mapping struct {
	Input string    `json:"input"`
	Facts []string  `json:"facts"`
	Kind  MatchKind `json:"kind"`
}

// Changed reports whether the resolution differs from the cleaned input.
func (m Mapping) Changed() bool {
	if len(m.Facts) != 1 {
		return len(m.Facts) > 1
	}
	return m.Facts[0] != domain.NormalizeFact(m.Input)
}

// Normalizer resolves tokens against a vocabulary. It is immutable and safe
// for concurrent use.
type Normalizer struct {
	canonical map[string]struct{}
	terms     []string
	synonyms  map[string][]string
	cutoff    float64
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithCutoff overrides the approximate matching threshold. Values outside
// (0, 1] are ignored.
func WithCutoff(cutoff float64) Option {
	return func(n *Normalizer) {
		if cutoff > 0 && cutoff <= 1 {
			n.cutoff = cutoff
		}
	}
}

// New creates a Normalizer for the given vocabulary.
func New(v Vocabulary, opts ...Option) *Normalizer {
	n := &Normalizer{
		canonical: make(map[string]struct{}, len(v.Canonical)),
		synonyms:  make(map[string][]string, len(v.Synonyms)),
		cutoff:    DefaultCutoff,
	}
	for _, term := range domain.NormalizeFacts(v.Canonical) {
		if _, ok := n.canonical[term]; ok {
			continue
		}
		n.canonical[term] = struct{}{}
		n.terms = append(n.terms, term)
	}
	slices.Sort(n.terms)

	for key, targets := range v.Synonyms {
		if k := domain.NormalizeFact(key); k != "" {
			n.synonyms[k] = domain.NormalizeFacts(targets)
		}
	}

	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Default returns a Normalizer over the built-in vocabulary.
func Default() *Normalizer {
	return New(BuiltinVocabulary())
}

// Terms returns the canonical vocabulary, sorted.
func (n *Normalizer) Terms() []string {
	return slices.Clone(n.terms)
}

// IsCanonical reports whether fact belongs to the canonical vocabulary.
func (n *Normalizer) IsCanonical(fact string) bool {
	_, ok := n.canonical[domain.NormalizeFact(fact)]
	return ok
}

// Expand resolves a single token. An empty token yields a mapping without facts.
func (n *Normalizer) Expand(token string) Mapping {
	m := Mapping{Input: strings.TrimSpace(token)}
	t := domain.NormalizeFact(token)
	if t == "" {
		return m
	}

	if targets, ok := n.synonyms[t]; ok {
		m.Facts = slices.Clone(targets)
		m.Kind = MatchSynonym
		return m
	}

	if _, ok := n.canonical[t]; ok {
		m.Facts = []string{t}
		m.Kind = MatchExact
		return m
	}

	if best, ok := n.closest(t); ok {
		m.Facts = []string{best}
		m.Kind = MatchFuzzy
		return m
	}

	m.Facts = []string{t}
	m.Kind = MatchRaw
	return m
}

// Normalize resolves every token and returns the resulting facts in input
// order, together with the mappings that changed a token.
func (n *Normalizer) Normalize(tokens []string) ([]string, []Mapping) {
	var facts []string
	var changed []Mapping
	for _, tok := range tokens {
		m := n.Expand(tok)
		if len(m.Facts) == 0 {
			continue
		}
		if m.Changed() {
			changed = append(changed, m)
		}
		facts = append(facts, m.Facts...)
	}
	return domain.NormalizeFacts(facts), changed
}

// NormalizeInput splits a free-text line and normalizes its tokens.
func (n *Normalizer) NormalizeInput(line string) ([]string, []Mapping) {
	return n.Normalize(SplitInput(line))
}

// closest returns the best canonical term whose similarity to word reaches
// the cutoff. Ties go to the lexicographically greater term.
func (n *Normalizer) closest(word string) (string, bool) {
	matcher := difflib.NewMatcher(nil, chars(word))

	var best string
	bestScore := -1.0
	for _, term := range n.terms {
		matcher.SetSeq1(chars(term))
		if matcher.RealQuickRatio() < n.cutoff || matcher.QuickRatio() < n.cutoff {
			continue
		}
		score := matcher.Ratio()
		if score < n.cutoff {
			continue
		}
		if score > bestScore || (score == bestScore && term > best) {
			best, bestScore = term, score
		}
	}
	return best, bestScore >= 0
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// SplitInput splits a line on commas and semicolons, dropping blank tokens.
func SplitInput(line string) []string {
	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
