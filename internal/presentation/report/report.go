// Package report renders finished inference runs for humans.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/deduce/pkg/normalize"
)

type group struct {
	title string
	facts []string
}

func groups(r *domain.Report) []group {
	return []group{
		{"User-entered facts", r.Group(domain.ProvenanceUser)},
		{"Inferred facts", r.Group(domain.ProvenanceInferred)},
		{"Unknown-source facts", unknown(r)},
	}
}

// unknown collects facts that are neither user-entered nor inferred,
// including passthrough tags outside the fixed categories.
func unknown(r *domain.Report) []string {
	var out []string
	for _, f := range r.Result.Facts {
		switch r.ProvenanceOf(f) {
		case domain.ProvenanceUser, domain.ProvenanceInferred:
		default:
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

func stepLine(e domain.LogEntry) string {
	outcome, source := "no change", "(no change)"
	if e.AddedNew {
		outcome, source = "added", "("+domain.InferredBy(e.RuleID)+")"
	}
	return fmt.Sprintf("%d) %s: IF %s THEN %s — %s %s",
		e.Step, e.RuleID, strings.Join(e.Antecedents, " & "), e.Consequent, outcome, source)
}

// Mappings writes one line per token that normalization changed.
func Mappings(w io.Writer, mappings []normalize.Mapping) error {
	for _, m := range mappings {
		if _, err := fmt.Fprintf(w, "Mapping input '%s' -> [%s]\n", m.Input, strings.Join(m.Facts, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// Text writes the plain-text rendition of a report.
func Text(w io.Writer, r *domain.Report) error {
	var sb strings.Builder

	sb.WriteString("User facts:\n")
	for _, f := range r.UserFacts {
		sb.WriteString(fmt.Sprintf("- %s (user)\n", f))
	}

	sb.WriteString("\nInference steps:\n")
	if len(r.Result.Log) == 0 {
		sb.WriteString("No rules fired.\n")
	}
	for _, e := range r.Result.Log {
		sb.WriteString(stepLine(e) + "\n")
		if e.Explanation != "" {
			sb.WriteString(fmt.Sprintf("   Explanation: %s\n", e.Explanation))
		}
		sb.WriteString(fmt.Sprintf("   Facts now: %s\n\n", strings.Join(e.Snapshot, ", ")))
	}

	sb.WriteString("\nFinal Facts (Grouped):\n")
	for _, g := range groups(r) {
		if len(g.facts) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", g.title))
		for _, f := range g.facts {
			sb.WriteString(fmt.Sprintf("- %s\n", f))
		}
	}

	if r.Result.StopReason != domain.StopFixpoint {
		sb.WriteString(fmt.Sprintf("\nStopped: %s after %d sweeps\n", r.Result.StopReason, r.Result.Sweeps))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Markdown returns a markdown document describing the report, suitable for
// terminal rendering.
func Markdown(r *domain.Report) string {
	var sb strings.Builder

	sb.WriteString("# Inference Report\n\n")
	if r.Catalog != "" {
		sb.WriteString(fmt.Sprintf("Catalog **%s**, %d sweeps, stopped at `%s`.\n\n", r.Catalog, r.Result.Sweeps, r.Result.StopReason))
	}

	sb.WriteString("## User facts\n\n")
	for _, f := range r.UserFacts {
		sb.WriteString(fmt.Sprintf("- %s\n", f))
	}

	sb.WriteString("\n## Inference steps\n\n")
	if len(r.Result.Log) == 0 {
		sb.WriteString("_No rules fired._\n")
	}
	for _, e := range r.Result.Log {
		sb.WriteString(fmt.Sprintf("%d. **%s**: IF %s THEN **%s**\n",
			e.Step, e.RuleID, strings.Join(e.Antecedents, " & "), e.Consequent))
		if e.Explanation != "" {
			sb.WriteString(fmt.Sprintf("   > %s\n", e.Explanation))
		}
	}

	sb.WriteString("\n## Final facts\n")
	for _, g := range groups(r) {
		if len(g.facts) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n### %s\n\n", g.title))
		for _, f := range g.facts {
			sb.WriteString(fmt.Sprintf("- %s\n", f))
		}
	}
	return sb.String()
}
