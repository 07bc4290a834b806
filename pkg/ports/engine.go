package ports

import (
	"context"

	"github.com/aretw0/deduce/pkg/domain"
)

// Inferrer is the interface adapters (HTTP, MCP, CLI) use to run inference.
// Implementations must be safe for concurrent calls: every call runs over its
// own fact store.
type Inferrer interface {
	// Infer seeds a fresh fact store with facts (provenance "user") and runs
	// the catalog to a fixpoint, or until every goal holds.
	Infer(ctx context.Context, facts []string, goals ...string) (*domain.Report, error)

	// Rules returns the normalized catalog in declaration order.
	Rules() []domain.Rule
}
