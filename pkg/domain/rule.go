package domain

import (
	"fmt"
	"slices"
)

// RuleSpec is a rule as supplied by a loader, before normalization.
// Any field may be missing: ID defaults to a positional label and
// Explanation defaults to empty when the catalog is built.
type RuleSpec struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	If          []string `json:"if" yaml:"if" mapstructure:"if"`
	Then        string   `json:"then" yaml:"then" mapstructure:"then"`
	Explanation string   `json:"explanation,omitempty" yaml:"explanation,omitempty" mapstructure:"explanation"`
}

// Rule is a normalized, read-only catalog entry.
type Rule struct {
	ID          string   `json:"id"`
	Antecedents []string `json:"antecedents"`
	Consequent  string   `json:"consequent"`
	Explanation string   `json:"explanation,omitempty"`
}

// Disabled reports whether the rule can never fire.
// Rules without antecedents or without a consequent are accepted but inert.
func (r Rule) Disabled() bool {
	return len(r.Antecedents) == 0 || r.Consequent == ""
}

func (r Rule) clone() Rule {
	r.Antecedents = slices.Clone(r.Antecedents)
	return r
}

// Catalog is the ordered, immutable rule set consumed by the engine.
type Catalog struct {
	name  string
	rules []Rule
	index map[string]int
}

// NewCatalog normalizes specs once, in declaration order.
// Antecedents and consequents are trimmed and lowercased, missing IDs
// become "R<n>" (1-based position) and nothing is ever rejected.
// When two rules share an ID, lookups by ID resolve to the first one.
func NewCatalog(name string, specs []RuleSpec) *Catalog {
	c := &Catalog{
		name:  name,
		rules: make([]Rule, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for i, spec := range specs {
		id := spec.ID
		if id == "" {
			id = fmt.Sprintf("R%d", i+1)
		}
		antecedents := make([]string, 0, len(spec.If))
		for _, a := range spec.If {
			antecedents = append(antecedents, NormalizeFact(a))
		}
		c.rules = append(c.rules, Rule{
			ID:          id,
			Antecedents: antecedents,
			Consequent:  NormalizeFact(spec.Then),
			Explanation: spec.Explanation,
		})
		if _, dup := c.index[id]; !dup {
			c.index[id] = i
		}
	}
	return c
}

// Name is a descriptive label for the catalog (file or directory name).
func (c *Catalog) Name() string {
	return c.name
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// At returns a copy of the i-th rule in declaration order.
func (c *Catalog) At(i int) Rule {
	return c.rules[i].clone()
}

// Rules returns a copy of every rule in declaration order.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.clone()
	}
	return out
}

// Get looks a rule up by ID.
func (c *Catalog) Get(id string) (Rule, error) {
	i, ok := c.index[id]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	return c.rules[i].clone(), nil
}

// Consequents returns the set of facts some rule can derive.
func (c *Catalog) Consequents() map[string]bool {
	out := make(map[string]bool, len(c.rules))
	for _, r := range c.rules {
		if r.Consequent != "" {
			out[r.Consequent] = true
		}
	}
	return out
}
