package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// mockNavigationService is a mock implementation of driving.NavigationService.
type mockNavigationService struct {
	result      *domain.NavigationResult
	plan        *domain.RoutePlan
	planErr     error
	status      domain.NavigationStatusSnapshot
	locations   []domain.LocationInfo
	history     []domain.NavigationRecord
	historyErr  error
	relocateErr error
	cancelled   bool

	navigatedTo  string
	navigateFrom string
	plannedFrom  string
	plannedTo    string
	relocatedTo  string
	historyLimit int
}

func (m *mockNavigationService) Navigate(_ context.Context, destination string) *domain.NavigationResult {
	m.navigatedTo = destination
	if m.result == nil {
		return &domain.NavigationResult{Status: domain.StatusCompleted, Message: "Arrived"}
	}
	return m.result
}

func (m *mockNavigationService) NavigateFrom(ctx context.Context, from, destination string) *domain.NavigationResult {
	m.navigateFrom = from
	if from != "" && m.result == nil {
		m.status.Position = domain.LocationID(from)
	}
	return m.Navigate(ctx, destination)
}

func (m *mockNavigationService) CancelCurrent() bool {
	return m.cancelled
}

func (m *mockNavigationService) Relocate(location string) (domain.LocationID, error) {
	m.relocatedTo = location
	if m.relocateErr != nil {
		return "", m.relocateErr
	}
	m.status.Position = domain.LocationID(location)
	return domain.LocationID(location), nil
}

func (m *mockNavigationService) Status() domain.NavigationStatusSnapshot {
	return m.status
}

func (m *mockNavigationService) Plan(_ context.Context, from, destination string) (*domain.RoutePlan, error) {
	m.plannedFrom = from
	m.plannedTo = destination
	return m.plan, m.planErr
}

func (m *mockNavigationService) Locations() []domain.LocationInfo {
	return m.locations
}

func (m *mockNavigationService) History(_ context.Context, limit int) ([]domain.NavigationRecord, error) {
	m.historyLimit = limit
	return m.history, m.historyErr
}

func directorPlan() *domain.RoutePlan {
	return &domain.RoutePlan{
		From:     "Entrance",
		To:       "Director_Office",
		Path:     domain.Path{"Entrance", "Corridor_Main", "Faculty_Offices", "Director_Office"},
		Distance: 15,
		Instructions: []domain.Instruction{
			{From: "Entrance", To: "Corridor_Main", Action: domain.ActionForward, Distance: 5},
			{From: "Corridor_Main", To: "Faculty_Offices", Action: domain.ActionTurnLeft, Distance: 4, Angle: 90},
			{From: "Faculty_Offices", To: "Director_Office", Action: domain.ActionForward, Distance: 6},
		},
	}
}

func newTestServer(t *testing.T, nav *mockNavigationService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Navigation: nav})
	require.NoError(t, err)
	return server
}
