package tests

import (
	"context"
	"testing"

	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/deduce/pkg/ports"
)

// RuleLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.RuleLoader.
// want is compared after catalog normalization, so adapters may differ in
// surface formatting (case, whitespace) but not in content or order.
func RuleLoaderContractTest(t *testing.T, loader ports.RuleLoader, want []domain.RuleSpec) {
	t.Helper()

	// 1. Test LoadRules (Success)
	t.Run("LoadRules_Success", func(t *testing.T) {
		specs, err := loader.LoadRules(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading rules: %v", err)
		}
		if len(specs) != len(want) {
			t.Fatalf("expected %d rules, got %d", len(want), len(specs))
		}

		got := domain.NewCatalog("got", specs).Rules()
		expected := domain.NewCatalog("want", want).Rules()
		for i := range expected {
			if got[i].ID != expected[i].ID {
				t.Errorf("rule %d: id mismatch. got %q, want %q", i, got[i].ID, expected[i].ID)
			}
			if got[i].Consequent != expected[i].Consequent {
				t.Errorf("rule %d: consequent mismatch. got %q, want %q", i, got[i].Consequent, expected[i].Consequent)
			}
			if len(got[i].Antecedents) != len(expected[i].Antecedents) {
				t.Errorf("rule %d: antecedents mismatch. got %v, want %v", i, got[i].Antecedents, expected[i].Antecedents)
				continue
			}
			for j := range expected[i].Antecedents {
				if got[i].Antecedents[j] != expected[i].Antecedents[j] {
					t.Errorf("rule %d: antecedent %d mismatch. got %q, want %q", i, j, got[i].Antecedents[j], expected[i].Antecedents[j])
				}
			}
			if got[i].Explanation != expected[i].Explanation {
				t.Errorf("rule %d: explanation mismatch. got %q, want %q", i, got[i].Explanation, expected[i].Explanation)
			}
		}
	})

	// 2. Test LoadRules (Deterministic)
	t.Run("LoadRules_Deterministic", func(t *testing.T) {
		a, errA := loader.LoadRules(context.Background())
		b, errB := loader.LoadRules(context.Background())
		if errA != nil || errB != nil {
			t.Fatalf("unexpected errors: %v, %v", errA, errB)
		}
		ca := domain.NewCatalog("", a).Rules()
		cb := domain.NewCatalog("", b).Rules()
		for i := range ca {
			if ca[i].ID != cb[i].ID {
				t.Errorf("order changed between loads at %d: %q vs %q", i, ca[i].ID, cb[i].ID)
			}
		}
	})
}
