package memory

import (
	"context"
	"slices"

	"github.com/aretw0/deduce/pkg/domain"
)

// Loader implements ports.RuleLoader over an in-memory list of specs.
type Loader struct {
	specs []domain.RuleSpec
}

// NewLoader creates a Loader serving specs in the given order.
func NewLoader(specs ...domain.RuleSpec) *Loader {
	return &Loader{specs: cloneSpecs(specs)}
}

// LoadRules returns a copy of the specs.
func (l *Loader) LoadRules(ctx context.Context) ([]domain.RuleSpec, error) {
	return cloneSpecs(l.specs), nil
}

func cloneSpecs(specs []domain.RuleSpec) []domain.RuleSpec {
	out := make([]domain.RuleSpec, len(specs))
	for i, s := range specs {
		s.If = slices.Clone(s.If)
		out[i] = s
	}
	return out
}
