package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/deduce/internal/validator"
	"github.com/aretw0/deduce/pkg/domain"
)

// ValidateCatalog lints the loaded catalog against the vocabulary and prints
// every finding. It returns the error-severity findings as a *domain.LintError.
func ValidateCatalog(app *App, w io.Writer) error {
	catalog := app.Engine.Catalog()
	issues := validator.Lint(catalog, app.Engine.Normalizer().IsCanonical)

	var errs []domain.LintIssue
	for _, issue := range issues {
		fmt.Fprintf(w, "%s\n", issue.Error())
		if issue.Severity == domain.SeverityError {
			errs = append(errs, issue)
		}
	}

	fmt.Fprintf(w, "%s: %d rules, %d issues\n", app.Engine.Name, catalog.Len(), len(issues))
	if len(errs) > 0 {
		return &domain.LintError{Issues: errs}
	}
	return nil
}
