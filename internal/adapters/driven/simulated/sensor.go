package simulated

import (
	"context"
	"sync"

	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
)

// SafeDistanceCM is the reading returned by a default simulated sensor.
const SafeDistanceCM = 100.0

// Ensure Sensor implements the interface.
var _ driven.DistanceSensor = (*Sensor)(nil)

// Sensor is a simulated distance sensor. It replays a script of readings
// and then repeats the last one indefinitely.
type Sensor struct {
	mu     sync.Mutex
	script []domain.DistanceReading
	reads  int
}

// NewSensor creates a sensor that always reads SafeDistanceCM.
func NewSensor() *Sensor {
	return NewFixedSensor(SafeDistanceCM)
}

// NewFixedSensor creates a sensor that always reads cm.
func NewFixedSensor(cm float64) *Sensor {
	return &Sensor{script: []domain.DistanceReading{{Centimetres: cm}}}
}

// NewScriptedSensor creates a sensor that returns readings in order,
// then repeats the last. An empty script reads SafeDistanceCM.
func NewScriptedSensor(readings ...domain.DistanceReading) *Sensor {
	if len(readings) == 0 {
		return NewSensor()
	}
	return &Sensor{script: append([]domain.DistanceReading(nil), readings...)}
}

// Read returns the next scripted reading.
func (s *Sensor) Read(ctx context.Context) (domain.DistanceReading, error) {
	if err := ctx.Err(); err != nil {
		return domain.DistanceReading{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := min(s.reads, len(s.script)-1)
	s.reads++
	return s.script[i], nil
}

// IsObstacleWithin reports whether the next reading is closer than thresholdCM.
func (s *Sensor) IsObstacleWithin(ctx context.Context, thresholdCM float64) (bool, error) {
	r, err := s.Read(ctx)
	if err != nil {
		return false, err
	}
	return r.IsObstacle(thresholdCM), nil
}

// Reads returns how many readings have been taken.
func (s *Sensor) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Obstacle is a reading at cm, for building scripts.
func Obstacle(cm float64) domain.DistanceReading {
	return domain.DistanceReading{Centimetres: cm}
}

// Clear is a reading at SafeDistanceCM.
func Clear() domain.DistanceReading {
	return domain.DistanceReading{Centimetres: SafeDistanceCM}
}

// Timeout is a reading with no echo.
func Timeout() domain.DistanceReading {
	return domain.DistanceReading{Timeout: true}
}
