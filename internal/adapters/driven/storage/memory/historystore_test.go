package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

func record(id string, at time.Time, status domain.NavigationStatus) *domain.NavigationRecord {
	return &domain.NavigationRecord{
		ID:          id,
		From:        "Entrance",
		Destination: "Director_Office",
		Status:      status,
		Path:        domain.Path{"Entrance", "Corridor_Main"},
		StartedAt:   at,
		FinishedAt:  at.Add(time.Second),
	}
}

func TestHistoryStore_RecordAndList(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, record("a", base, domain.StatusCompleted)))
	require.NoError(t, store.Record(ctx, record("b", base.Add(time.Minute), domain.StatusBlocked)))
	require.NoError(t, store.Record(ctx, record("c", base.Add(2*time.Minute), domain.StatusCancelled)))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "b", limited[1].ID)
}

func TestHistoryStore_ListSameStartNewestFirst(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, record("first", at, domain.StatusCompleted)))
	require.NoError(t, store.Record(ctx, record("second", at, domain.StatusBlocked)))

	records, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].ID)
}

func TestHistoryStore_RecordNil(t *testing.T) {
	store := NewHistoryStore()
	err := store.Record(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryStore_RecordCopiesPath(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	r := record("a", time.Now(), domain.StatusCompleted)
	require.NoError(t, store.Record(ctx, r))

	r.Path[0] = "Mutated"

	got, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.LocationID("Entrance"), got[0].Path[0])
}

func TestHistoryStore_Prune(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, record(fmt.Sprint(i), base.Add(time.Duration(i)*time.Minute), domain.StatusCompleted)))
	}

	require.NoError(t, store.Prune(ctx, 2))

	got, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "4", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	require.NoError(t, store.Prune(ctx, 10))
	got, _ = store.List(ctx, 0)
	assert.Len(t, got, 2)

	require.NoError(t, store.Prune(ctx, 0))
	got, _ = store.List(ctx, 0)
	assert.Empty(t, got)
}

func TestHistoryStore_ConcurrentRecord(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()

	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			_ = store.Record(ctx, record(fmt.Sprint(i), time.Now(), domain.StatusCompleted))
		}(i)
	}
	for i := 0; i < 20; i++ {
		<-done
	}

	got, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}
