package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/deduce/pkg/domain"
)

// GraphOverlay contains the outcome of a run to visualize on the catalog graph.
type GraphOverlay struct {
	UserFacts  []string
	FiredRules []string
	Inferred   []string
}

// OverlayFromReport builds an overlay from a finished run.
func OverlayFromReport(r *domain.Report) *GraphOverlay {
	return &GraphOverlay{
		UserFacts:  r.Group(domain.ProvenanceUser),
		FiredRules: r.Result.Fired(),
		Inferred:   r.Group(domain.ProvenanceInferred),
	}
}

// GenerateMermaid produces a Mermaid flowchart for a rule catalog.
// Facts and rules are both nodes: every antecedent links into its rule and
// every rule links to its consequent. Shapes:
// - Rule: [[Subroutine]]
// - Fact no rule derives (user input): [/Parallelogram/]
// - Derivable fact: (Rounded)
// Rules without antecedents are drawn dashed since they never fire.
// Overlay styles mark user facts, fired rules and inferred facts.
func GenerateMermaid(rules []domain.Rule, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	derivable := make(map[string]bool)
	for _, r := range rules {
		if r.Consequent != "" {
			derivable[r.Consequent] = true
		}
	}

	declared := make(map[string]bool)
	declareFact := func(fact string) string {
		id := factID(fact)
		if !declared[id] {
			declared[id] = true
			opener, closer := "[/", "/]"
			if derivable[fact] {
				opener, closer = "(", ")"
			}
			sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(fact), closer))
		}
		return id
	}

	ruleNodes := make(map[string][]string)
	for i, r := range rules {
		rid := fmt.Sprintf("rule_%d", i+1)
		ruleNodes[r.ID] = append(ruleNodes[r.ID], rid)
		sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", rid, escapeLabel(r.ID)))

		for _, a := range r.Antecedents {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", declareFact(a), rid))
		}
		if r.Consequent != "" {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", rid, declareFact(r.Consequent)))
		}
		if r.Disabled() {
			sb.WriteString(fmt.Sprintf("    style %s stroke-dasharray: 5 5\n", rid))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme (Light/Dark)
		sb.WriteString("    classDef user fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef fired fill:#ffeb3b,stroke:#fbc02d,stroke-width:3px,color:#000;\n")
		sb.WriteString("    classDef inferred fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")

		classFacts := func(facts []string, class string) {
			for _, f := range facts {
				if id := factID(domain.NormalizeFact(f)); declared[id] {
					sb.WriteString(fmt.Sprintf("    class %s %s;\n", id, class))
				}
			}
		}
		classFacts(overlay.UserFacts, "user")
		classFacts(overlay.Inferred, "inferred")

		seen := make(map[string]bool)
		for _, id := range overlay.FiredRules {
			if seen[id] {
				continue
			}
			seen[id] = true
			for _, rid := range ruleNodes[id] {
				sb.WriteString(fmt.Sprintf("    class %s fired;\n", rid))
			}
		}
	}

	return sb.String()
}

func factID(fact string) string {
	return "fact_" + sanitizeMermaidID(fact)
}

func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
