package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/aretw0/deduce/pkg/domain"
)

// Store implements ports.ReportStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Report
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Report),
	}
}

// Save persists a deep copy of the report.
func (s *Store) Save(ctx context.Context, report *domain.Report) error {
	copied := cloneReport(report)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[report.ID] = copied
	return nil
}

// Load retrieves a copy of the report so callers can't mutate the store.
func (s *Store) Load(ctx context.Context, id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.data[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return cloneReport(report), nil
}

// Delete removes the report.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored report IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func cloneReport(r *domain.Report) *domain.Report {
	c := *r
	c.UserFacts = slices.Clone(r.UserFacts)
	c.Goals = slices.Clone(r.Goals)
	c.Provenance = maps.Clone(r.Provenance)
	c.Sealed = slices.Clone(r.Sealed)
	c.Result.Facts = slices.Clone(r.Result.Facts)
	c.Result.Log = make([]domain.LogEntry, len(r.Result.Log))
	for i, e := range r.Result.Log {
		e.Antecedents = slices.Clone(e.Antecedents)
		e.MatchedAntecedents = slices.Clone(e.MatchedAntecedents)
		e.Snapshot = slices.Clone(e.Snapshot)
		e.AntecedentStatus = maps.Clone(e.AntecedentStatus)
		e.AntecedentProvenance = maps.Clone(e.AntecedentProvenance)
		c.Result.Log[i] = e
	}
	return &c
}
