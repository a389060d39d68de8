package domain

import "time"

// ExecutionState is the lifecycle state of a navigation session.
type ExecutionState string

// Executor states. Idle is initial; everything after Running is terminal.
const (
	StateIdle                       ExecutionState = "idle"
	StateRunning                    ExecutionState = "running"
	StateCompleted                  ExecutionState = "completed"
	StateCancelled                  ExecutionState = "cancelled"
	StateBlocked                    ExecutionState = "blocked"
	StateManualInterventionRequired ExecutionState = "manual_intervention_required"
	StateFailed                     ExecutionState = "failed"
)

// IsTerminal returns true if the session can no longer change state.
func (s ExecutionState) IsTerminal() bool {
	switch s {
	case StateCompleted, StateCancelled, StateBlocked, StateManualInterventionRequired, StateFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ExecutionState) String() string {
	return string(s)
}

// NavigationStatus is the outcome reported to callers of Navigate.
type NavigationStatus string

// Navigation outcomes.
const (
	StatusCompleted                  NavigationStatus = "completed"
	StatusCancelled                  NavigationStatus = "cancelled"
	StatusBlocked                    NavigationStatus = "blocked"
	StatusManualInterventionRequired NavigationStatus = "manual_intervention_required"
	StatusFailed                     NavigationStatus = "failed"
	StatusUnknownLocation            NavigationStatus = "unknown_location"
	StatusNoPathFound                NavigationStatus = "no_path_found"
	StatusAlreadyRunning             NavigationStatus = "already_running"
)

// IsSuccess returns true only for a completed navigation.
func (s NavigationStatus) IsSuccess() bool {
	return s == StatusCompleted
}

// String returns the string representation.
func (s NavigationStatus) String() string {
	return string(s)
}

// StatusFromState maps a terminal executor state to a navigation status.
func StatusFromState(s ExecutionState) NavigationStatus {
	switch s {
	case StateCompleted:
		return StatusCompleted
	case StateCancelled:
		return StatusCancelled
	case StateBlocked:
		return StatusBlocked
	case StateManualInterventionRequired:
		return StatusManualInterventionRequired
	default:
		return StatusFailed
	}
}

// NavigationSession is the runtime record of one executor run.
type NavigationSession struct {
	ID          string
	Destination LocationID
	Total       int
	Current     int
	State       ExecutionState
	StartedAt   time.Time
	FinishedAt  *time.Time
	Fault       error
}

// ExecutionReport summarises a finished executor run.
type ExecutionReport struct {
	SessionID string
	State     ExecutionState

	// Completed is the number of instructions fully executed.
	Completed int
	Total     int

	// Halted is the instruction that ended the run early, if any.
	Halted *Instruction

	// Obstacles counts obstacle detections that triggered a grace wait.
	Obstacles int

	StartedAt  time.Time
	FinishedAt time.Time

	// Fault is the hardware error behind a Failed run.
	Fault error
}

// Duration returns the wall time of the run.
func (r *ExecutionReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// NavigationResult is the structured outcome of a navigate request.
type NavigationResult struct {
	SessionID      string           `json:"session_id,omitempty"`
	Status         NavigationStatus `json:"status"`
	Message        string           `json:"message"`
	From           LocationID       `json:"from,omitempty"`
	Destination    LocationID       `json:"destination,omitempty"`
	Path           Path             `json:"path,omitempty"`
	Distance       float64          `json:"distance,omitempty"`
	StepsCompleted int              `json:"steps_completed"`
	StepsTotal     int              `json:"steps_total"`
	Err            error            `json:"-"`
}

// NavigationStatusSnapshot is a point-in-time view of the navigation core.
// Current is the 0-based index of the step in progress.
type NavigationStatusSnapshot struct {
	Position    LocationID     `json:"position"`
	State       ExecutionState `json:"state"`
	SessionID   string         `json:"session_id,omitempty"`
	Destination LocationID     `json:"destination,omitempty"`
	Current     int            `json:"current"`
	Total       int            `json:"total"`
	Step        *Instruction   `json:"step,omitempty"`
}

// IsActive returns true while a session is running.
func (s NavigationStatusSnapshot) IsActive() bool {
	return s.State == StateRunning
}

// StepNumber returns the 1-based number of the step in progress.
func (s NavigationStatusSnapshot) StepNumber() int {
	return s.Current + 1
}

// NavigationRecord is a persisted history entry of one navigate request.
type NavigationRecord struct {
	ID             string           `json:"id"`
	From           LocationID       `json:"from"`
	Destination    LocationID       `json:"destination"`
	Status         NavigationStatus `json:"status"`
	Message        string           `json:"message"`
	Path           Path             `json:"path,omitempty"`
	Distance       float64          `json:"distance"`
	StepsCompleted int              `json:"steps_completed"`
	StepsTotal     int              `json:"steps_total"`
	Obstacles      int              `json:"obstacles"`
	StartedAt      time.Time        `json:"started_at"`
	FinishedAt     time.Time        `json:"finished_at"`
	Error          string           `json:"error,omitempty"`
}

// EndPosition returns where the navigation left the robot: the node reached
// by the last completed step, or From when nothing was driven.
func (r *NavigationRecord) EndPosition() LocationID {
	if r.StepsCompleted >= 0 && r.StepsCompleted < len(r.Path) {
		return r.Path[r.StepsCompleted]
	}
	return r.From
}

// DistanceReading is one ultrasonic measurement.
// Timeout means no echo arrived; the distance is then unknown.
type DistanceReading struct {
	Centimetres float64
	Timeout     bool
}

// IsObstacle reports whether the reading confirms an obstacle within threshold.
// A timed-out reading is never an obstacle.
func (r DistanceReading) IsObstacle(thresholdCM float64) bool {
	return !r.Timeout && r.Centimetres < thresholdCM
}
