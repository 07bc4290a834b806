package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/deduce/pkg/domain"
)

// Vocabulary reports whether a fact can be supplied by the user.
// A nil Vocabulary skips the reachability check.
type Vocabulary func(fact string) bool

// Lint inspects a catalog and returns every finding in catalog order.
func Lint(catalog *domain.Catalog, vocab Vocabulary) []domain.LintIssue {
	var issues []domain.LintIssue
	produced := catalog.Consequents()
	seenID := make(map[string]int)
	seenShape := make(map[string]string)

	for i, r := range catalog.Rules() {
		pos := i + 1
		add := func(sev domain.Severity, format string, args ...any) {
			issues = append(issues, domain.LintIssue{
				RuleID:   r.ID,
				Position: pos,
				Severity: sev,
				Reason:   fmt.Sprintf(format, args...),
			})
		}

		if first, ok := seenID[r.ID]; ok {
			add(domain.SeverityError, "duplicate rule id (first declared at #%d)", first)
		} else {
			seenID[r.ID] = pos
		}

		if r.Consequent == "" {
			add(domain.SeverityWarning, "empty consequent: rule can never add a fact")
		}
		if len(r.Antecedents) == 0 {
			add(domain.SeverityWarning, "no antecedents: rule never fires")
		}
		if slices.Contains(r.Antecedents, r.Consequent) && r.Consequent != "" {
			add(domain.SeverityWarning, "consequent %q is one of its own antecedents", r.Consequent)
		}

		if vocab != nil {
			for _, a := range r.Antecedents {
				if !produced[a] && !vocab(a) {
					add(domain.SeverityWarning, "antecedent %q is not produced by any rule nor part of the vocabulary", a)
				}
			}
		}

		if !r.Disabled() {
			shape := shapeKey(r)
			if other, ok := seenShape[shape]; ok {
				add(domain.SeverityWarning, "same conditions and conclusion as %s", other)
			} else {
				seenShape[shape] = r.ID
			}
		}
	}
	return issues
}

// Validate returns a *domain.LintError holding the error-severity findings,
// or nil when there are none.
func Validate(catalog *domain.Catalog, vocab Vocabulary) error {
	var errs []domain.LintIssue
	for _, issue := range Lint(catalog, vocab) {
		if issue.Severity == domain.SeverityError {
			errs = append(errs, issue)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &domain.LintError{Issues: errs}
}

func shapeKey(r domain.Rule) string {
	ants := slices.Clone(r.Antecedents)
	slices.Sort(ants)
	ants = slices.Compact(ants)
	return strings.Join(ants, "\x00") + "\x01" + r.Consequent
}
