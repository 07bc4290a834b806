package ports

import (
	"context"

	"github.com/aretw0/deduce/pkg/domain"
)

// RuleLoader defines how the engine retrieves its rule catalog.
// This allows the storage layer (YAML file, Loam directory, Memory) to be decoupled.
type RuleLoader interface {
	// LoadRules returns the raw rule specs in declaration order.
	// Normalization and defaulting happen later, in domain.NewCatalog.
	LoadRules(ctx context.Context) ([]domain.RuleSpec, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload of the rule catalog.
type Watchable interface {
	// Watch returns a channel that receives the ID of each changed document.
	Watch(ctx context.Context) (<-chan string, error)
}
