package domain

import "strings"

// Provenance is the classified reason a fact is present in a fact store.
// Besides the canonical categories below, any other raw tag is carried
// through lowercased, so new producers do not need a code change here.
type Provenance string

const (
	ProvenanceUser             Provenance = "user"
	ProvenanceInferred         Provenance = "inferred"
	ProvenancePossibleInferred Provenance = "possible_inferred"
	ProvenanceUnknown          Provenance = "unknown"
)

// Raw provenance tags understood by Classify.
const (
	TagUser    = "user"
	TagInitial = "initial"

	inferredPrefix         = "inferred_by:"
	possibleInferredPrefix = "possible_inferred_by:"
)

// Classify maps a raw provenance tag to its category.
// Rules are applied in order: empty -> unknown, "user"/"initial" -> user,
// "inferred_by:*" -> inferred, "possible_inferred_by:*" -> possible_inferred,
// anything else -> the lowercased tag itself.
func Classify(tag string) Provenance {
	if tag == "" {
		return ProvenanceUnknown
	}
	t := strings.ToLower(tag)
	switch {
	case t == TagUser || t == TagInitial:
		return ProvenanceUser
	case strings.HasPrefix(t, inferredPrefix):
		return ProvenanceInferred
	case strings.HasPrefix(t, possibleInferredPrefix):
		return ProvenancePossibleInferred
	}
	return Provenance(t)
}

// InferredBy builds the provenance tag recorded for a fact derived by ruleID.
func InferredBy(ruleID string) string {
	return inferredPrefix + ruleID
}

// PossibleInferredBy builds the tag for a tentative derivation by ruleID.
func PossibleInferredBy(ruleID string) string {
	return possibleInferredPrefix + ruleID
}

// IsCanonical reports whether p is one of the four fixed categories.
func (p Provenance) IsCanonical() bool {
	switch p {
	case ProvenanceUser, ProvenanceInferred, ProvenancePossibleInferred, ProvenanceUnknown:
		return true
	}
	return false
}
