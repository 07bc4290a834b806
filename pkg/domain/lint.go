package domain

import "fmt"

// Severity grades a catalog lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// LintIssue is a single finding about a rule catalog.
type LintIssue struct {
	RuleID   string   `json:"rule_id"`
	Position int      `json:"position"` // 1-based position in the catalog
	Severity Severity `json:"severity"`
	Reason   string   `json:"reason"`
}

func (i *LintIssue) Error() string {
	return fmt.Sprintf("%s (#%d) %s: %s", i.RuleID, i.Position, i.Severity, i.Reason)
}

// LintError aggregates the error-severity findings of a catalog.
type LintError struct {
	Issues []LintIssue
}

func (e *LintError) Error() string {
	if len(e.Issues) == 1 {
		return e.Issues[0].Error()
	}
	msg := fmt.Sprintf("%d catalog errors:\n", len(e.Issues))
	for i := range e.Issues {
		msg += fmt.Sprintf("  %d. %s\n", i+1, e.Issues[i].Error())
	}
	return msg
}
