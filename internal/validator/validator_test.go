package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/deduce/internal/assets"
	"github.com/aretw0/deduce/pkg/adapters/file"
	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/deduce/pkg/normalize"
)

func reasons(issues []domain.LintIssue, ruleID string) []string {
	var out []string
	for _, i := range issues {
		if i.RuleID == ruleID {
			out = append(out, string(i.Severity)+": "+i.Reason)
		}
	}
	return out
}

func TestLint(t *testing.T) {
	catalog := domain.NewCatalog("lint", []domain.RuleSpec{
		{ID: "A", If: []string{"x"}, Then: "y"},
		{ID: "A", If: []string{"y"}, Then: "z"},
		{ID: "B", If: []string{"x"}, Then: ""},
		{ID: "C", If: nil, Then: "w"},
		{ID: "D", If: []string{"w", "v"}, Then: "v"},
		{ID: "E", If: []string{"ghost"}, Then: "q"},
		{ID: "F", If: []string{"x"}, Then: "y"},
	})
	vocab := func(f string) bool { return f == "x" || f == "w" || f == "v" }

	issues := Lint(catalog, vocab)

	dup := reasons(issues, "A")
	if len(dup) != 1 || !strings.HasPrefix(dup[0], "error: duplicate rule id") {
		t.Errorf("Expected duplicate id error, got %v", dup)
	}
	if r := reasons(issues, "B"); len(r) != 1 || !strings.Contains(r[0], "empty consequent") {
		t.Errorf("Expected empty consequent warning, got %v", r)
	}
	if r := reasons(issues, "C"); len(r) != 1 || !strings.Contains(r[0], "no antecedents") {
		t.Errorf("Expected no antecedents warning, got %v", r)
	}
	if r := reasons(issues, "D"); len(r) != 1 || !strings.Contains(r[0], "own antecedents") {
		t.Errorf("Expected self-reference warning, got %v", r)
	}
	if r := reasons(issues, "E"); len(r) != 1 || !strings.Contains(r[0], `"ghost"`) {
		t.Errorf("Expected unreachable antecedent warning, got %v", r)
	}
	if r := reasons(issues, "F"); len(r) != 1 || !strings.Contains(r[0], "same conditions and conclusion as A") {
		t.Errorf("Expected redundant rule warning, got %v", r)
	}

	for _, i := range issues {
		if i.RuleID == "A" && i.Position != 2 {
			t.Errorf("Expected duplicate reported at position 2, got %d", i.Position)
		}
	}
}

func TestLint_NilVocabularySkipsReachability(t *testing.T) {
	catalog := domain.NewCatalog("lint", []domain.RuleSpec{
		{ID: "E", If: []string{"ghost"}, Then: "q"},
	})
	if issues := Lint(catalog, nil); len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}
}

func TestValidate(t *testing.T) {
	catalog := domain.NewCatalog("lint", []domain.RuleSpec{
		{ID: "A", If: []string{"x"}, Then: "y"},
		{ID: "A", If: []string{"y"}, Then: "z"},
		{ID: "B", Then: "w"},
	})

	err := Validate(catalog, nil)
	var lintErr *domain.LintError
	if !errors.As(err, &lintErr) {
		t.Fatalf("Expected *domain.LintError, got %v", err)
	}
	if len(lintErr.Issues) != 1 {
		t.Errorf("Expected only error-severity issues, got %v", lintErr.Issues)
	}
}

func TestValidate_BuiltinCatalog(t *testing.T) {
	specs, err := file.NewLoaderFromBytes(assets.RulesName, assets.Rules).LoadRules(t.Context())
	if err != nil {
		t.Fatalf("LoadRules() failed: %v", err)
	}
	catalog := domain.NewCatalog(assets.RulesName, specs)
	n := normalize.Default()

	if err := Validate(catalog, n.IsCanonical); err != nil {
		t.Errorf("Built-in catalog should have no errors: %v", err)
	}
	for _, issue := range Lint(catalog, n.IsCanonical) {
		if strings.Contains(issue.Reason, "not produced") {
			t.Errorf("Built-in antecedent outside the vocabulary: %s", issue.Error())
		}
	}
}

func TestLint_InertRulesAreNotRedundant(t *testing.T) {
	catalog := domain.NewCatalog("lint", []domain.RuleSpec{
		{ID: "A", If: []string{"x"}, Then: ""},
		{ID: "B", If: []string{"x"}, Then: ""},
		{ID: "C", If: nil, Then: "y"},
		{ID: "D", If: nil, Then: "y"},
	})
	for _, i := range Lint(catalog, nil) {
		if strings.Contains(i.Reason, "same conditions") {
			t.Errorf("Disabled rule %s reported as redundant: %s", i.RuleID, i.Reason)
		}
	}
}
