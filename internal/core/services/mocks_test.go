package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/campusnav/internal/adapters/driven/clock"
	"github.com/custodia-labs/campusnav/internal/adapters/driven/mapfile"
	"github.com/custodia-labs/campusnav/internal/core/domain"
)

var errMotorBus = errors.New("i2c bus error")

// mockMotion records every motion command as "verb:speed".
type mockMotion struct {
	mu         sync.Mutex
	calls      []string
	forwardErr error
	turnErr    error
	stopErr    error
	shutdowns  int
}

func (m *mockMotion) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockMotion) Set(_ context.Context, left, right int) error {
	m.record(fmt.Sprintf("set:%d,%d", left, right))
	return nil
}

func (m *mockMotion) Forward(_ context.Context, speed int) error {
	m.record(fmt.Sprintf("forward:%d", speed))
	return m.forwardErr
}

func (m *mockMotion) Backward(_ context.Context, speed int) error {
	m.record(fmt.Sprintf("backward:%d", speed))
	return nil
}

func (m *mockMotion) TurnLeft(_ context.Context, speed int) error {
	m.record(fmt.Sprintf("turn_left:%d", speed))
	return m.turnErr
}

func (m *mockMotion) TurnRight(_ context.Context, speed int) error {
	m.record(fmt.Sprintf("turn_right:%d", speed))
	return m.turnErr
}

func (m *mockMotion) Stop() error {
	m.record("stop")
	return m.stopErr
}

func (m *mockMotion) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shutdowns++
	return nil
}

func (m *mockMotion) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Count returns how many recorded calls equal call.
func (m *mockMotion) Count(call string) int {
	n := 0
	for _, c := range m.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// Last returns the most recent call.
func (m *mockMotion) Last() string {
	calls := m.Calls()
	if len(calls) == 0 {
		return ""
	}
	return calls[len(calls)-1]
}

// mockSensor returns scripted obstacle answers, repeating the last.
type mockSensor struct {
	mu      sync.Mutex
	blocked []bool
	err     error
	polls   int
}

func newClearSensor() *mockSensor {
	return &mockSensor{blocked: []bool{false}}
}

func (s *mockSensor) Read(ctx context.Context) (domain.DistanceReading, error) {
	blocked, err := s.IsObstacleWithin(ctx, 20)
	if err != nil {
		return domain.DistanceReading{}, err
	}
	if blocked {
		return domain.DistanceReading{Centimetres: 10}, nil
	}
	return domain.DistanceReading{Centimetres: 100}, nil
}

func (s *mockSensor) IsObstacleWithin(_ context.Context, _ float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	i := min(s.polls, len(s.blocked)-1)
	s.polls++
	return s.blocked[i], nil
}

func (s *mockSensor) Polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

// mockMetrics counts telemetry calls.
type mockMetrics struct {
	mu        sync.Mutex
	planned   []bool
	started   int
	finished  []domain.NavigationStatus
	requested []domain.NavigationStatus
	obstacles []bool
}

func (m *mockMetrics) RoutePlanned(found bool, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.planned = append(m.planned, found)
}

func (m *mockMetrics) SessionStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
}

func (m *mockMetrics) SessionFinished(status domain.NavigationStatus, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = append(m.finished, status)
}

func (m *mockMetrics) NavigationRequested(status domain.NavigationStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requested = append(m.requested, status)
}

func (m *mockMetrics) ObstacleEncountered(cleared bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obstacles = append(m.obstacles, cleared)
}

// failingHistory fails every call.
type failingHistory struct{}

func (failingHistory) Record(context.Context, *domain.NavigationRecord) error {
	return errors.New("disk full")
}

func (failingHistory) List(context.Context, int) ([]domain.NavigationRecord, error) {
	return nil, errors.New("disk full")
}

func (failingHistory) Prune(context.Context, int) error {
	return errors.New("disk full")
}

// --- fixtures ---

var testEpoch = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestClock() *clock.Virtual {
	return clock.NewVirtual(testEpoch)
}

func testMotion() domain.MotionSettings {
	return domain.DefaultNavigationSettings().Motion
}

// builtinCampus loads the embedded A Block map.
func builtinCampus(t *testing.T) *domain.CampusMap {
	t.Helper()
	def, err := mapfile.NewBuiltinSource().Load(context.Background())
	require.NoError(t, err)
	m, err := domain.NewCampusMap(*def, domain.EdgePolicyRequireReverse)
	require.NoError(t, err)
	return m
}

// edge is shorthand for an edge definition.
func edge(to string, distance float64, action domain.Action, angle float64) domain.EdgeDefinition {
	return domain.EdgeDefinition{To: to, Distance: distance, Action: string(action), Angle: angle}
}

// buildCampus builds a map from location -> edges, failing the test on error.
func buildCampus(t *testing.T, locations map[string][]domain.EdgeDefinition) *domain.CampusMap {
	t.Helper()
	def := domain.MapDefinition{Name: "test"}
	for name, edges := range locations {
		def.Locations = append(def.Locations, domain.LocationDefinition{Name: name, Edges: edges})
	}
	m, err := domain.NewCampusMap(def, domain.EdgePolicyAllowOneWay)
	require.NoError(t, err)
	return m
}

func forward(from, to string, distance float64) domain.Instruction {
	return domain.Instruction{
		From:     domain.LocationID(from),
		To:       domain.LocationID(to),
		Action:   domain.ActionForward,
		Distance: distance,
	}
}
