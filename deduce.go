package deduce

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/deduce/internal/assets"
	"github.com/aretw0/deduce/internal/logging"
	"github.com/aretw0/deduce/internal/runtime"
	"github.com/aretw0/deduce/pkg/adapters/file"
	loamAdapter "github.com/aretw0/deduce/pkg/adapters/loam"
	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/deduce/pkg/facts"
	"github.com/aretw0/deduce/pkg/normalize"
	"github.com/aretw0/deduce/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the deduce library.
// It owns an immutable rule catalog and runs independent inferences over it.
type Engine struct {
	loader     ports.RuleLoader
	normalizer *normalize.Normalizer
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	maxSweeps  int
	Name       string

	mu      sync.RWMutex
	catalog *domain.Catalog
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom RuleLoader, bypassing path detection.
func WithLoader(l ports.RuleLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSweeps bounds every run. Values <= 0 keep the runtime default.
func WithMaxSweeps(n int) Option {
	return func(e *Engine) {
		e.maxSweeps = n
	}
}

// WithCatalogName overrides the name reported for the catalog.
func WithCatalogName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// WithNormalizer sets the vocabulary used by InferInput.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(e *Engine) {
		e.normalizer = n
	}
}

// New initializes a new Engine.
// The rules path may be a YAML/JSON catalog file or a directory of rule
// documents; an empty path selects the built-in symptom catalog.
// If WithLoader is provided the path is only used as a label.
func New(rulesPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		loader, err := LoaderForPath(rulesPath)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	}

	if eng.Name == "" {
		eng.Name = catalogName(rulesPath, eng.loader)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	eng.logger = eng.logger.With("catalog", eng.Name)

	if eng.normalizer == nil {
		eng.normalizer = normalize.Default()
	}

	if err := eng.Reload(context.Background()); err != nil {
		return nil, err
	}
	return eng, nil
}

// LoaderForPath picks the rule loader for a catalog location.
func LoaderForPath(path string) (ports.RuleLoader, error) {
	if path == "" {
		return file.NewLoaderFromBytes(assets.RulesName, assets.Rules), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid rules path: %w", err)
	}
	if info.IsDir() {
		loader, err := loamAdapter.Open(path)
		if err != nil {
			return nil, err
		}
		return loader, nil
	}
	return file.NewLoader(path), nil
}

func catalogName(path string, loader ports.RuleLoader) string {
	if named, ok := loader.(interface{ Name() string }); ok {
		if n := named.Name(); n != "" {
			return n
		}
	}
	if path != "" {
		base := filepath.Base(path)
		return base[:len(base)-len(filepath.Ext(base))]
	}
	return "default"
}

// Reload rebuilds the catalog from the loader. Runs already in flight keep
// the catalog they started with.
func (e *Engine) Reload(ctx context.Context) error {
	specs, err := e.loader.LoadRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	if len(specs) == 0 {
		return domain.ErrCatalogEmpty
	}

	catalog := domain.NewCatalog(e.Name, specs)

	e.mu.Lock()
	e.catalog = catalog
	e.mu.Unlock()

	e.logger.Debug("catalog loaded", "rules", catalog.Len())
	return nil
}

// Catalog returns the current catalog.
func (e *Engine) Catalog() *domain.Catalog {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.catalog
}

// Rules returns the normalized rules in declaration order.
func (e *Engine) Rules() []domain.Rule {
	return e.Catalog().Rules()
}

// Normalizer returns the vocabulary used to resolve free-text input.
func (e *Engine) Normalizer() *normalize.Normalizer {
	return e.normalizer
}

func (e *Engine) newRuntime() *runtime.Engine {
	return runtime.NewEngine(e.Catalog(),
		runtime.WithMaxSweeps(e.maxSweeps),
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
	)
}

// InferWithStore runs the catalog over a caller-owned store, mutating it.
func (e *Engine) InferWithStore(ctx context.Context, store *facts.Store, goals ...string) (*domain.Result, error) {
	return e.newRuntime().Run(ctx, store, goals)
}

// Infer seeds a fresh store with facts (provenance "user") and runs the
// catalog until a fixpoint, or until every goal holds.
func (e *Engine) Infer(ctx context.Context, userFacts []string, goals ...string) (*domain.Report, error) {
	return e.infer(ctx, "", domain.NormalizeFacts(userFacts), goals)
}

// InferInput normalizes a comma or semicolon separated line through the
// vocabulary and runs the resulting facts. The mappings that changed a
// token are returned alongside the report.
func (e *Engine) InferInput(ctx context.Context, line string, goals ...string) (*domain.Report, []normalize.Mapping, error) {
	userFacts, mappings := e.normalizer.NormalizeInput(line)
	report, err := e.infer(ctx, line, userFacts, goals)
	return report, mappings, err
}

func (e *Engine) infer(ctx context.Context, input string, userFacts, goals []string) (*domain.Report, error) {
	store := facts.NewFromFacts(userFacts, domain.TagUser)

	result, err := e.InferWithStore(ctx, store, goals...)
	if result == nil {
		return nil, err
	}

	report := &domain.Report{
		ID:         uuid.NewString(),
		Catalog:    e.Name,
		CreatedAt:  time.Now().UTC(),
		Input:      input,
		UserFacts:  userFacts,
		Goals:      domain.NormalizeFacts(goals),
		Result:     *result,
		Provenance: store.ProvenanceMap(),
	}
	return report, err
}

// Watch returns a channel that signals when the underlying catalog changes.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying RuleLoader used by the engine.
func (e *Engine) Loader() ports.RuleLoader {
	return e.loader
}
