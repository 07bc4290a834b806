package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/deduce/internal/logging"
	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/deduce/pkg/facts"
)

// DefaultMaxSweeps bounds a run when no explicit limit is configured.
// A run over n rules always converges within n+1 sweeps, so the bound is
// only ever reached by a defect.
const DefaultMaxSweeps = 1000

// Engine is the forward-chaining core.
// It sweeps an immutable catalog over a fact store until a fixpoint.
type Engine struct {
	catalog   *domain.Catalog
	maxSweeps int
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithMaxSweeps sets the sweep bound. Values <= 0 keep the default.
func WithMaxSweeps(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxSweeps = n
		}
	}
}

// WithLogger sets the structured logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine over catalog.
func NewEngine(catalog *domain.Catalog, opts ...EngineOption) *Engine {
	e := &Engine{
		catalog:   catalog,
		maxSweeps: DefaultMaxSweeps,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine runs.
func (e *Engine) Catalog() *domain.Catalog {
	return e.catalog
}

// evaluation is what one rule produced during one sweep.
type evaluation struct {
	rule       domain.Rule
	applicable bool
	matched    []string
	status     map[string]bool
	provenance map[string]domain.Provenance
	addedNew   bool
	snapshot   []string
}

// Run derives facts into store until nothing new can be added, the goals are
// all present, or the sweep bound is exhausted. The store is mutated in place.
// Each rule gets at most one firing attempt per run, so every rule ID appears
// at most once in the log.
//
// The context is checked between sweeps; when it is done the partial result
// is returned together with ctx.Err().
func (e *Engine) Run(ctx context.Context, store *facts.Store, goals []string) (*domain.Result, error) {
	started := time.Now()
	goals = domain.NormalizeFacts(goals)

	fired := make(map[string]struct{}, e.catalog.Len())
	entries := []domain.LogEntry{}
	reason := domain.StopSweepLimit
	sweeps := 0
	var runErr error

	for sweeps < e.maxSweeps {
		if err := ctx.Err(); err != nil {
			reason, runErr = domain.StopCanceled, err
			break
		}
		sweeps++

		if e.hooks.OnSweepStart != nil {
			e.hooks.OnSweepStart(ctx, e.sweepEvent(domain.EventSweepStart, sweeps, 0, store))
		}

		evals := e.sweep(store, fired)

		derived := 0
		for i := range evals {
			if evals[i].addedNew {
				derived++
			}
		}

		if e.hooks.OnSweepEnd != nil {
			e.hooks.OnSweepEnd(ctx, e.sweepEvent(domain.EventSweepEnd, sweeps, derived, store))
		}

		if derived == 0 {
			// Nothing changed, so no rule can become applicable in a later sweep.
			reason = domain.StopFixpoint
			break
		}

		for i := range evals {
			ev := &evals[i]
			if !ev.applicable || ev.rule.Consequent == "" || !ev.addedNew {
				continue
			}
			entry := ev.logEntry(len(entries)+1, sweeps)
			entries = append(entries, entry)

			e.logger.Debug("rule fired",
				"step", entry.Step,
				"sweep", sweeps,
				"rule_id", entry.RuleID,
				"consequent", entry.Consequent,
			)
			if e.hooks.OnDerivation != nil {
				e.hooks.OnDerivation(ctx, &domain.DerivationEvent{
					EventBase: e.base(domain.EventDerivation),
					Entry:     entry,
				})
			}
		}

		if len(goals) > 0 && store.ContainsAll(goals) {
			reason = domain.StopGoalsReached
			break
		}
	}

	if reason == domain.StopSweepLimit {
		e.logger.Warn("sweep limit exhausted before fixpoint",
			"max_sweeps", e.maxSweeps,
			"derivations", len(entries),
		)
	}

	result := &domain.Result{
		Facts:      store.Snapshot(),
		Log:        entries,
		Sweeps:     sweeps,
		StopReason: reason,
	}

	elapsed := time.Since(started)
	e.logger.Info("inference finished",
		"catalog", e.catalog.Name(),
		"stop_reason", reason,
		"sweeps", sweeps,
		"derivations", len(entries),
		"facts", len(result.Facts),
		"duration", elapsed,
	)
	if e.hooks.OnRunComplete != nil {
		e.hooks.OnRunComplete(ctx, &domain.RunEvent{
			EventBase:   e.base(domain.EventRunComplete),
			StopReason:  reason,
			Sweeps:      sweeps,
			Derivations: len(entries),
			Duration:    elapsed,
		})
	}

	return result, runErr
}

// sweep evaluates every rule that has not fired yet, in catalog order.
// Consequents are added immediately, so later rules in the same sweep see them.
func (e *Engine) sweep(store *facts.Store, fired map[string]struct{}) []evaluation {
	evals := make([]evaluation, 0, e.catalog.Len()-len(fired))

	for i := 0; i < e.catalog.Len(); i++ {
		rule := e.catalog.At(i)
		if _, done := fired[rule.ID]; done {
			continue
		}

		ev := evaluation{
			rule:       rule,
			matched:    []string{},
			status:     make(map[string]bool, len(rule.Antecedents)),
			provenance: make(map[string]domain.Provenance, len(rule.Antecedents)),
		}

		all := true
		for _, a := range rule.Antecedents {
			present := store.Contains(a)
			ev.status[a] = present
			ev.provenance[a] = store.Provenance(a)
			if present {
				ev.matched = append(ev.matched, a)
			} else {
				all = false
			}
		}
		// Rules without antecedents are never applicable.
		ev.applicable = len(rule.Antecedents) > 0 && all

		if ev.applicable && rule.Consequent != "" {
			ev.addedNew = store.Add(rule.Consequent, domain.InferredBy(rule.ID))
			// Consumed even when the consequent already held.
			fired[rule.ID] = struct{}{}
			if ev.addedNew {
				ev.snapshot = store.Snapshot()
			}
		}

		evals = append(evals, ev)
	}

	return evals
}

func (ev *evaluation) logEntry(step, sweep int) domain.LogEntry {
	return domain.LogEntry{
		Step:                 step,
		Sweep:                sweep,
		RuleID:               ev.rule.ID,
		Antecedents:          ev.rule.Antecedents,
		Consequent:           ev.rule.Consequent,
		Explanation:          ev.rule.Explanation,
		MatchedAntecedents:   ev.matched,
		AntecedentStatus:     ev.status,
		AntecedentProvenance: ev.provenance,
		AddedNew:             ev.addedNew,
		Snapshot:             ev.snapshot,
	}
}

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Catalog:   e.catalog.Name(),
	}
}

func (e *Engine) sweepEvent(t domain.EventType, sweep, derived int, store *facts.Store) *domain.SweepEvent {
	return &domain.SweepEvent{
		EventBase: e.base(t),
		Sweep:     sweep,
		Derived:   derived,
		Facts:     store.Snapshot(),
	}
}
