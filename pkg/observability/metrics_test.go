package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/deduce/internal/logging"
	"github.com/aretw0/deduce/internal/runtime"
	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/deduce/pkg/facts"
	"github.com/aretw0/deduce/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainCatalog() *domain.Catalog {
	return domain.NewCatalog("chain", []domain.RuleSpec{
		{ID: "R1", If: []string{"a"}, Then: "b"},
		{ID: "R2", If: []string{"b"}, Then: "c"},
		{ID: "R3", If: []string{"z"}, Then: "y"},
	})
}

func TestMetrics_RecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	eng := runtime.NewEngine(chainCatalog(), runtime.WithLifecycleHooks(m.Hooks()))
	_, err := eng.Run(context.Background(), facts.NewFromFacts([]string{"a"}, domain.TagUser), nil)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(string(domain.StopFixpoint))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RuleFirings.WithLabelValues("R1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RuleFirings.WithLabelValues("R2")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RuleFirings.WithLabelValues("R3")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FactsDerived))

	count, err := testutil.GatherAndCount(reg, "deduce_sweeps_per_run")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	assert.NotPanics(t, func() {
		observability.NewMetrics(nil)
	})
}

func TestChainHooks(t *testing.T) {
	var order []string
	first := domain.LifecycleHooks{
		OnDerivation: func(ctx context.Context, e *domain.DerivationEvent) {
			order = append(order, "first:"+e.Entry.RuleID)
		},
	}
	second := domain.LifecycleHooks{
		OnDerivation: func(ctx context.Context, e *domain.DerivationEvent) {
			order = append(order, "second:"+e.Entry.RuleID)
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			order = append(order, "done")
		},
	}

	chained := observability.ChainHooks(first, domain.LifecycleHooks{}, second)
	assert.Nil(t, chained.OnSweepStart)
	assert.Nil(t, chained.OnSweepEnd)

	eng := runtime.NewEngine(chainCatalog(), runtime.WithLifecycleHooks(chained))
	_, err := eng.Run(context.Background(), facts.NewFromFacts([]string{"a"}, domain.TagUser), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"first:R1", "second:R1", "first:R2", "second:R2", "done"}, order)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo)

	eng := runtime.NewEngine(chainCatalog(), runtime.WithLifecycleHooks(observability.LoggingHooks(logger)))
	_, err := eng.Run(context.Background(), facts.NewFromFacts([]string{"a"}, domain.TagUser), nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=derivation")
	assert.Contains(t, out, "rule_id=R2")
	assert.Contains(t, out, "stop_reason=fixpoint")
}
