package driven

import (
	"context"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// NavigationHistoryStore persists the outcome of navigation requests.
type NavigationHistoryStore interface {
	// Record stores a finished navigation.
	Record(ctx context.Context, record *domain.NavigationRecord) error

	// List returns recent records, most recent first.
	// A limit of zero or less returns all records.
	List(ctx context.Context, limit int) ([]domain.NavigationRecord, error)

	// Prune removes all but the most recent 'keep' records.
	Prune(ctx context.Context, keep int) error
}
