package cli

import (
	"bytes"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/campusnav/internal/adapters/driven/simulated"
	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driving"
)

func TestNavigateCmd_Completed(t *testing.T) {
	tr := setupTestRuntime(t)

	out, err := executeCommand(t, "", "navigate", "director")

	require.NoError(t, err)
	assert.Contains(t, out, "Arrived at Director Office")
	assert.Contains(t, out, "Route:    Entrance -> Corridor_Main -> Faculty_Offices -> Director_Office")
	assert.Contains(t, out, "Distance: 15.0m")
	assert.Contains(t, out, "Steps:    3/3")
	assert.Equal(t, domain.LocationID("Director_Office"), tr.nav.Position())
	assert.True(t, tr.motor.Current().IsStop())
}

func TestNavigateCmd_JoinsArguments(t *testing.T) {
	tr := setupTestRuntime(t)

	_, err := executeCommand(t, "", "navigate", "main", "corridor")

	require.NoError(t, err)
	assert.Equal(t, domain.LocationID("Corridor_Main"), tr.nav.Position())
}

func TestNavigateCmd_From(t *testing.T) {
	tr := setupTestRuntime(t)

	out, err := executeCommand(t, "", "navigate", "exam", "--from", "main corridor")

	require.NoError(t, err)
	assert.Contains(t, out, "Corridor_Main -> Accounts_Office -> Exam_Branch")
	assert.Equal(t, domain.LocationID("Exam_Branch"), tr.nav.Position())
}

func TestNavigateCmd_FromUnknown(t *testing.T) {
	tr := setupTestRuntime(t)

	out, err := executeCommand(t, "", "navigate", "exam", "--from", "atlantis")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNavigationUnsuccessful)
	assert.Contains(t, err.Error(), "unknown_location")
	assert.Contains(t, out, `Unknown start location: "atlantis"`)
	assert.Empty(t, tr.motor.Commands())
	assert.Equal(t, domain.LocationID("Entrance"), tr.nav.Position())
}

func TestNavigateCmd_JSON(t *testing.T) {
	setupTestRuntime(t)

	out, err := executeCommand(t, "", "navigate", "faculty", "--json")
	require.NoError(t, err)

	var result domain.NavigationResult
	require.NoError(t, json.Unmarshal(bytes.TrimSpace([]byte(out)), &result))
	assert.Equal(t, domain.StatusCompleted, result.Status)
	assert.Equal(t, domain.LocationID("Faculty_Offices"), result.Destination)
	assert.Equal(t, 2, result.StepsCompleted)
	assert.NotEmpty(t, result.SessionID)
}

func TestNavigateCmd_Blocked(t *testing.T) {
	tr := setupTestRuntime(t, simulated.Obstacle(5))

	out, err := executeCommand(t, "", "navigate", "director")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNavigationUnsuccessful)
	assert.Contains(t, err.Error(), "blocked")
	assert.Contains(t, out, "Path blocked between Entrance and Corridor Main")
	assert.Equal(t, domain.LocationID("Entrance"), tr.nav.Position())
}

func TestNavigateCmd_UnknownDestination(t *testing.T) {
	setupTestRuntime(t)

	out, err := executeCommand(t, "", "navigate", "atlantis")

	assert.ErrorIs(t, err, ErrNavigationUnsuccessful)
	assert.Contains(t, out, `Unknown location: "atlantis"`)
	assert.NotContains(t, out, "Route:")
}

func TestNavigateCmd_Stairs(t *testing.T) {
	setupTestRuntime(t)

	out, err := executeCommand(t, "", "navigate", "cs lab")

	assert.ErrorIs(t, err, ErrNavigationUnsuccessful)
	assert.Contains(t, err.Error(), string(domain.StatusManualInterventionRequired))
	assert.Contains(t, out, "manual intervention required")
}

func TestNavigateCmd_AlreadyThere(t *testing.T) {
	tr := setupTestRuntime(t)

	out, err := executeCommand(t, "", "navigate", "entrance")

	require.NoError(t, err)
	assert.Contains(t, out, "Already at Entrance")
	assert.Empty(t, tr.motor.Commands())
}

func TestNavigateCmd_RequiresDestination(t *testing.T) {
	setupTestRuntime(t)

	_, err := executeCommand(t, "", "navigate")

	assert.Error(t, err)
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))
}

func TestProgressLine(t *testing.T) {
	step := domain.Instruction{From: "Entrance", To: "Corridor_Main", Action: domain.ActionForward, Distance: 5}

	line := progressLine(domain.NavigationStatusSnapshot{State: domain.StateRunning, Current: 0, Total: 3, Step: &step})

	assert.Equal(t, "  [1/3] forward 5.0m to Corridor_Main", line)
}

// scriptedStatus replays status snapshots, repeating the last one.
// Only Status is implemented.
type scriptedStatus struct {
	driving.NavigationService

	snapshots []domain.NavigationStatusSnapshot
	calls     atomic.Int32
}

func (s *scriptedStatus) Status() domain.NavigationStatusSnapshot {
	n := int(s.calls.Add(1)) - 1
	return s.snapshots[min(n, len(s.snapshots)-1)]
}

func TestShowProgress_NumbersEveryStep(t *testing.T) {
	first := domain.Instruction{From: "A", To: "B", Action: domain.ActionForward, Distance: 1}
	second := domain.Instruction{From: "B", To: "C", Action: domain.ActionForward, Distance: 1}
	nav := &scriptedStatus{snapshots: []domain.NavigationStatusSnapshot{
		{State: domain.StateRunning, Current: 0, Total: 2, Step: &first},
		{State: domain.StateRunning, Current: 0, Total: 2, Step: &first},
		{State: domain.StateRunning, Current: 1, Total: 2, Step: &second},
		{State: domain.StateCompleted, Current: 2, Total: 2},
	}}
	var buf bytes.Buffer

	stop := showProgress(&buf, nav)
	require.Eventually(t, func() bool { return nav.calls.Load() >= 4 }, 5*time.Second, 20*time.Millisecond)
	stop()

	assert.Equal(t, "  [1/2] forward 1.0m to B\n  [2/2] forward 1.0m to C\n", buf.String())
}
