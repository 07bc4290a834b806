package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/deduce/internal/presentation/graph"
	"github.com/aretw0/deduce/pkg/domain"
)

func catalog() []domain.Rule {
	return domain.NewCatalog("g", []domain.RuleSpec{
		{ID: "R1", If: []string{"fever", "sore throat"}, Then: "flu"},
		{ID: "R2", If: []string{"flu"}, Then: "rest_required"},
		{ID: "R3", Then: "never"},
	}).Rules()
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes and Edges",
			contains: []string{
				"graph LR",
				`rule_1[["R1"]]`,
				`fact_fever[/"fever"/]`,
				`fact_sore_throat[/"sore throat"/]`,
				`fact_flu("flu")`,
				"fact_fever --> rule_1",
				"rule_1 --> fact_flu",
				"fact_flu --> rule_2",
				"rule_2 --> fact_rest_required",
				"style rule_3 stroke-dasharray: 5 5",
			},
			excludes: []string{"classDef"},
		},
		{
			name: "Overlay",
			overlay: &graph.GraphOverlay{
				UserFacts:  []string{"Fever", "unknown"},
				FiredRules: []string{"R1", "R1"},
				Inferred:   []string{"flu"},
			},
			contains: []string{
				"classDef fired",
				"class fact_fever user;",
				"class fact_flu inferred;",
				"class rule_1 fired;",
			},
			excludes: []string{"fact_unknown", "class rule_2 fired;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(catalog(), tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("Expected output not to contain %q, got:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestGenerateMermaid_FactsDeclaredOnce(t *testing.T) {
	got := graph.GenerateMermaid(catalog(), nil)
	if n := strings.Count(got, `fact_flu("flu")`); n != 1 {
		t.Errorf("Expected fact node declared once, got %d", n)
	}
}

func TestOverlayFromReport(t *testing.T) {
	report := &domain.Report{
		Result: domain.Result{
			Facts: []string{"fever", "flu"},
			Log:   []domain.LogEntry{{Step: 1, RuleID: "R1", Consequent: "flu"}},
		},
		Provenance: map[string]domain.Provenance{
			"fever": domain.ProvenanceUser,
			"flu":   domain.ProvenanceInferred,
		},
	}

	overlay := graph.OverlayFromReport(report)
	if len(overlay.FiredRules) != 1 || overlay.FiredRules[0] != "R1" {
		t.Errorf("Unexpected fired rules %v", overlay.FiredRules)
	}
	if len(overlay.UserFacts) != 1 || len(overlay.Inferred) != 1 {
		t.Errorf("Unexpected grouping %+v", overlay)
	}
}
