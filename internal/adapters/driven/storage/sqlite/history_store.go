package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
)

// historyStore implements driven.NavigationHistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.NavigationHistoryStore = (*historyStore)(nil)

// timestampLayout keeps a fixed number of fractional digits so that
// started_at sorts correctly as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record stores a finished navigation.
func (s *historyStore) Record(ctx context.Context, record *domain.NavigationRecord) error {
	if record == nil {
		return domain.ErrInvalidInput
	}

	path := record.Path
	if path == nil {
		path = domain.Path{}
	}
	pathJSON, err := json.Marshal(path)
	if err != nil {
		return fmt.Errorf("marshalling path: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO navigation_sessions (
			id, from_location, destination, status, message, path, distance,
			steps_completed, steps_total, obstacles, started_at, finished_at, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			message = excluded.message,
			steps_completed = excluded.steps_completed,
			obstacles = excluded.obstacles,
			finished_at = excluded.finished_at,
			error = excluded.error
	`, record.ID, string(record.From), string(record.Destination), string(record.Status),
		record.Message, string(pathJSON), record.Distance,
		record.StepsCompleted, record.StepsTotal, record.Obstacles,
		record.StartedAt.UTC().Format(timestampLayout),
		record.FinishedAt.UTC().Format(timestampLayout),
		nullString(record.Error))

	if err != nil {
		return fmt.Errorf("recording navigation: %w", err)
	}
	return nil
}

// List returns recent records, most recent first.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.NavigationRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, from_location, destination, status, message, path, distance,
			steps_completed, steps_total, obstacles, started_at, finished_at, error
		FROM navigation_sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying navigation history: %w", err)
	}
	defer rows.Close()

	var records []domain.NavigationRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanNavigationRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating navigation history: %w", err)
	}

	return records, nil
}

// Prune removes all but the most recent 'keep' records.
func (s *historyStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM navigation_sessions
		WHERE id NOT IN (
			SELECT id FROM navigation_sessions
			ORDER BY started_at DESC, rowid DESC
			LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning navigation history: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scanNavigationRecord scans a navigation_sessions row.
func scanNavigationRecord(rows *sql.Rows) (*domain.NavigationRecord, error) {
	var r domain.NavigationRecord
	var from, dest, status, pathJSON, startedAt, finishedAt string
	var errText sql.NullString

	if err := rows.Scan(&r.ID, &from, &dest, &status, &r.Message, &pathJSON, &r.Distance,
		&r.StepsCompleted, &r.StepsTotal, &r.Obstacles, &startedAt, &finishedAt, &errText); err != nil {
		return nil, fmt.Errorf("scanning navigation record: %w", err)
	}

	r.From = domain.LocationID(from)
	r.Destination = domain.LocationID(dest)
	r.Status = domain.NavigationStatus(status)
	if err := json.Unmarshal([]byte(pathJSON), &r.Path); err != nil {
		return nil, fmt.Errorf("unmarshalling path: %w", err)
	}
	if len(r.Path) == 0 {
		r.Path = nil
	}
	r.StartedAt = parseTime(startedAt)
	r.FinishedAt = parseTime(finishedAt)
	if errText.Valid {
		r.Error = errText.String
	}

	return &r, nil
}

// parseTime parses an RFC3339 timestamp, returning the zero time on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString converts an empty string to NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
