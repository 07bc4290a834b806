package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/deduce/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-test-report-" + time.Now().Format("20060102150405")

	newReport := func(id string) *domain.Report {
		return &domain.Report{
			ID:        id,
			Catalog:   "contract",
			CreatedAt: time.Now().UTC().Truncate(time.Second),
			UserFacts: []string{"fever"},
			Result: domain.Result{
				Facts: []string{"fever", "flu"},
				Log: []domain.LogEntry{{
					Step:                 1,
					Sweep:                1,
					RuleID:               "R1",
					Antecedents:          []string{"fever"},
					Consequent:           "flu",
					MatchedAntecedents:   []string{"fever"},
					AntecedentStatus:     map[string]bool{"fever": true},
					AntecedentProvenance: map[string]domain.Provenance{"fever": domain.ProvenanceUser},
					AddedNew:             true,
					Snapshot:             []string{"fever", "flu"},
				}},
				Sweeps:     2,
				StopReason: domain.StopFixpoint,
			},
			Provenance: map[string]domain.Provenance{
				"fever": domain.ProvenanceUser,
				"flu":   domain.ProvenanceInferred,
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := newReport(reportID)

		err := store.Save(ctx, report)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.ID, loaded.ID)
		assert.Equal(t, report.Result.Facts, loaded.Result.Facts)
		require.Len(t, loaded.Result.Log, 1)
		assert.Equal(t, "R1", loaded.Result.Log[0].RuleID)
		assert.Equal(t, domain.ProvenanceUser, loaded.Result.Log[0].AntecedentProvenance["fever"])
		assert.Equal(t, domain.ProvenanceInferred, loaded.ProvenanceOf("flu"))
		assert.True(t, report.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Loaded reports are isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		loaded.Result.Facts[0] = "mutated"
		loaded.Provenance["fever"] = domain.ProvenanceUnknown

		again, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		assert.Equal(t, "fever", again.Result.Facts[0])
		assert.Equal(t, domain.ProvenanceUser, again.ProvenanceOf("fever"))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(ctx, reportID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")

		assert.NoError(t, store.Delete(ctx, reportID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := reportID + "-1"
		id2 := reportID + "-2"
		require.NoError(t, store.Save(ctx, newReport(id1)))
		require.NoError(t, store.Save(ctx, newReport(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
