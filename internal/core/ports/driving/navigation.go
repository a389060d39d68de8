package driving

import (
	"context"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// NavigationService is the entry point for moving the robot.
type NavigationService interface {
	// Navigate resolves destination, plans a route from the current
	// position and executes it. Every outcome, including failures, is
	// reported in the returned result; it is never nil.
	Navigate(ctx context.Context, destination string) *domain.NavigationResult

	// NavigateFrom is Navigate with the position first set to from, both
	// under the same lock. An empty from keeps the current position.
	NavigateFrom(ctx context.Context, from, destination string) *domain.NavigationResult

	// CancelCurrent requests the active navigation to stop.
	// Returns true if a session was running and is now cancelling.
	CancelCurrent() bool

	// Relocate sets the robot's believed position, for use after it has
	// been moved by hand. Fails while a navigation is running.
	Relocate(location string) (domain.LocationID, error)

	// Status returns the current position and session progress.
	Status() domain.NavigationStatusSnapshot

	// Plan previews the route to destination without moving.
	// An empty from uses the current position.
	Plan(ctx context.Context, from, destination string) (*domain.RoutePlan, error)

	// Locations lists every location on the map with its aliases.
	Locations() []domain.LocationInfo

	// History returns recent navigation records, most recent first.
	History(ctx context.Context, limit int) ([]domain.NavigationRecord, error)
}
