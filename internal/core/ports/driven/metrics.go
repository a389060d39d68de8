package driven

import (
	"time"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// NavigationMetrics receives navigation telemetry.
// Implementations must be safe for concurrent use.
type NavigationMetrics interface {
	// RoutePlanned records a routing attempt and whether it found a path.
	RoutePlanned(found bool, distance float64)

	// SessionStarted records the start of an executor run.
	SessionStarted()

	// SessionFinished records the end of an executor run.
	SessionFinished(status domain.NavigationStatus, elapsed time.Duration)

	// NavigationRequested records the outcome of a navigate request,
	// including requests that never reached the executor.
	NavigationRequested(status domain.NavigationStatus)

	// ObstacleEncountered records an obstacle that triggered a grace wait.
	ObstacleEncountered(cleared bool)
}
