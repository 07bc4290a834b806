package ports

import (
	"context"

	"github.com/aretw0/deduce/pkg/domain"
)

// ReportStore persists finished inference reports for later inspection.
// Reports are an audit trail only: no fact state is ever carried from one
// run into the next.
type ReportStore interface {
	// Save persists the report under its ID.
	Save(ctx context.Context, report *domain.Report) error

	// Load retrieves a report by ID.
	// Returns domain.ErrReportNotFound if the report does not exist.
	Load(ctx context.Context, id string) (*domain.Report, error)

	// Delete removes a report. Deleting a missing report is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of the stored reports.
	List(ctx context.Context) ([]string, error)
}
