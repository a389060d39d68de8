package driven

import (
	"context"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// DistanceSensor measures the distance to the nearest obstacle ahead.
type DistanceSensor interface {
	// Read takes one measurement. A missing echo is reported as a
	// reading with Timeout set, not as an error.
	Read(ctx context.Context) (domain.DistanceReading, error)

	// IsObstacleWithin reports whether an obstacle is closer than thresholdCM.
	// A timed-out reading is treated as clear.
	IsObstacleWithin(ctx context.Context, thresholdCM float64) (bool, error)
}
