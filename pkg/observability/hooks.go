package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/deduce/pkg/domain"
)

// ChainHooks merges hook sets. Each callback invokes the non-nil callbacks
// of every set in order.
func ChainHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks

	var sweepStart, sweepEnd []func(context.Context, *domain.SweepEvent)
	var derivation []func(context.Context, *domain.DerivationEvent)
	var runComplete []func(context.Context, *domain.RunEvent)

	for _, s := range sets {
		if s.OnSweepStart != nil {
			sweepStart = append(sweepStart, s.OnSweepStart)
		}
		if s.OnSweepEnd != nil {
			sweepEnd = append(sweepEnd, s.OnSweepEnd)
		}
		if s.OnDerivation != nil {
			derivation = append(derivation, s.OnDerivation)
		}
		if s.OnRunComplete != nil {
			runComplete = append(runComplete, s.OnRunComplete)
		}
	}

	if len(sweepStart) > 0 {
		out.OnSweepStart = func(ctx context.Context, e *domain.SweepEvent) {
			for _, fn := range sweepStart {
				fn(ctx, e)
			}
		}
	}
	if len(sweepEnd) > 0 {
		out.OnSweepEnd = func(ctx context.Context, e *domain.SweepEvent) {
			for _, fn := range sweepEnd {
				fn(ctx, e)
			}
		}
	}
	if len(derivation) > 0 {
		out.OnDerivation = func(ctx context.Context, e *domain.DerivationEvent) {
			for _, fn := range derivation {
				fn(ctx, e)
			}
		}
	}
	if len(runComplete) > 0 {
		out.OnRunComplete = func(ctx context.Context, e *domain.RunEvent) {
			for _, fn := range runComplete {
				fn(ctx, e)
			}
		}
	}
	return out
}

// LoggingHooks returns hooks that emit one structured line per derivation and
// per finished run.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDerivation: func(ctx context.Context, e *domain.DerivationEvent) {
			logger.InfoContext(ctx, "derivation",
				"step", e.Entry.Step,
				"sweep", e.Entry.Sweep,
				"rule_id", e.Entry.RuleID,
				"consequent", e.Entry.Consequent,
			)
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_complete",
				"stop_reason", e.StopReason,
				"sweeps", e.Sweeps,
				"derivations", e.Derivations,
				"duration", e.Duration,
			)
		},
	}
}
