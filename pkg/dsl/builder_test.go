package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/deduce/pkg/domain"
)

func TestBuilder_SimpleCatalog(t *testing.T) {
	b := New()

	b.Rule("R1").
		If("fever", "cough").
		If("sore throat").
		Then("flu").
		Because("Classic influenza triad.").
		Rule("R2").
		If("flu").
		Then("rest_required")

	loader, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	specs, err := loader.LoadRules(context.Background())
	if err != nil {
		t.Fatalf("LoadRules() failed: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(specs))
	}

	first := specs[0]
	if first.ID != "R1" || first.Then != "flu" {
		t.Errorf("Unexpected first rule: %+v", first)
	}
	if len(first.If) != 3 || first.If[2] != "sore throat" {
		t.Errorf("Expected antecedents to accumulate, got %v", first.If)
	}
	if first.Explanation != "Classic influenza triad." {
		t.Errorf("Unexpected explanation %q", first.Explanation)
	}
	if specs[1].ID != "R2" {
		t.Errorf("Expected declaration order to be kept, got %q second", specs[1].ID)
	}
}

func TestBuilder_ReusesExistingRule(t *testing.T) {
	b := New()
	b.Rule("R1").If("a")
	b.Rule("R1").If("b").Then("c")

	loader, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	specs, _ := loader.LoadRules(context.Background())
	if len(specs) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(specs))
	}
	if len(specs[0].If) != 2 {
		t.Errorf("Expected merged antecedents, got %v", specs[0].If)
	}
}

func TestBuilder_DefaultIDs(t *testing.T) {
	b := New()
	b.Rule("").If("a").Then("b")
	b.Rule("").If("b").Then("c")

	loader, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	specs, _ := loader.LoadRules(context.Background())
	catalog := domain.NewCatalog("dsl", specs)

	if catalog.At(0).ID != "R1" || catalog.At(1).ID != "R2" {
		t.Errorf("Expected positional IDs, got %q and %q", catalog.At(0).ID, catalog.At(1).ID)
	}
}

func TestBuilder_MissingConsequent(t *testing.T) {
	b := New()
	b.Rule("R1").If("a")

	if _, err := b.Build(); err == nil {
		t.Error("Expected error for rule without consequent")
	}
}
