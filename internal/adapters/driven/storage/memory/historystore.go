package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.NavigationHistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.NavigationHistoryStore.
// Used when no data directory is configured and in tests.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.NavigationRecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record stores a finished navigation.
func (s *HistoryStore) Record(_ context.Context, record *domain.NavigationRecord) error {
	if record == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *record
	r.Path = append(domain.Path(nil), record.Path...)
	s.records = append(s.records, r)
	return nil
}

// List returns recent records, most recent first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.NavigationRecord, error) {
	s.mu.RLock()
	out := make([]domain.NavigationRecord, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, s.records[i])
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Prune keeps only the most recent 'keep' records.
func (s *HistoryStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if keep < 0 {
		keep = 0
	}
	if len(s.records) <= keep {
		return nil
	}

	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].StartedAt.Before(s.records[j].StartedAt)
	})
	s.records = append([]domain.NavigationRecord(nil), s.records[len(s.records)-keep:]...)
	return nil
}
