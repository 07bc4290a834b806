package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/deduce/pkg/adapters/memory"
	"github.com/aretw0/deduce/pkg/domain"
)

// Builder manages the catalog construction. Rules keep declaration order.
type Builder struct {
	rules []*RuleBuilder
	index map[string]*RuleBuilder
}

// New creates a new catalog builder.
func New() *Builder {
	return &Builder{
		index: make(map[string]*RuleBuilder),
	}
}

// Rule creates a new rule in the catalog.
// If a rule with the same ID already exists, it returns the existing builder.
// An empty ID is assigned its positional default when the catalog is built.
func (b *Builder) Rule(id string) *RuleBuilder {
	if id != "" {
		if rb, ok := b.index[id]; ok {
			return rb
		}
	}
	rb := &RuleBuilder{spec: domain.RuleSpec{ID: id}, builder: b}
	b.rules = append(b.rules, rb)
	if id != "" {
		b.index[id] = rb
	}
	return rb
}

// Build compiles the catalog into a memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	specs := make([]domain.RuleSpec, 0, len(b.rules))
	for i, rb := range b.rules {
		if strings.TrimSpace(rb.spec.Then) == "" {
			return nil, fmt.Errorf("rule #%d (%q) has no consequent", i+1, rb.spec.ID)
		}
		specs = append(specs, rb.spec)
	}
	return memory.NewLoader(specs...), nil
}

// RuleBuilder configures a single rule.
type RuleBuilder struct {
	spec    domain.RuleSpec
	builder *Builder
}

// If appends antecedents to the rule.
func (rb *RuleBuilder) If(facts ...string) *RuleBuilder {
	rb.spec.If = append(rb.spec.If, facts...)
	return rb
}

// Then sets the consequent.
func (rb *RuleBuilder) Then(fact string) *RuleBuilder {
	rb.spec.Then = fact
	return rb
}

// Because sets the explanation shown when the rule fires.
func (rb *RuleBuilder) Because(explanation string) *RuleBuilder {
	rb.spec.Explanation = explanation
	return rb
}

// Rule starts another rule on the same catalog, allowing chained declarations.
func (rb *RuleBuilder) Rule(id string) *RuleBuilder {
	return rb.builder.Rule(id)
}
