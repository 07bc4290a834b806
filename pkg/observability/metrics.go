package observability

import (
	"context"

	"github.com/aretw0/deduce/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by engine hooks.
type Metrics struct {
	Runs         *prometheus.CounterVec
	RuleFirings  *prometheus.CounterVec
	Sweeps       prometheus.Histogram
	FactsDerived prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deduce_runs_total",
				Help: "Total number of inference runs by stop reason",
			},
			[]string{"stop_reason"},
		),
		RuleFirings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deduce_rule_firings_total",
				Help: "Total number of rule firings that derived a new fact",
			},
			[]string{"rule_id"},
		),
		Sweeps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "deduce_sweeps_per_run",
				Help:    "Number of sweeps each run needed",
				Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 50, 100},
			},
		),
		FactsDerived: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "deduce_facts_derived_total",
				Help: "Total number of facts derived across runs",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Runs, m.RuleFirings, m.Sweeps, m.FactsDerived)
	}
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDerivation: func(ctx context.Context, e *domain.DerivationEvent) {
			m.RuleFirings.WithLabelValues(e.Entry.RuleID).Inc()
			m.FactsDerived.Inc()
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(string(e.StopReason)).Inc()
			m.Sweeps.Observe(float64(e.Sweeps))
		},
	}
}
