package domain

import "errors"

// Domain errors represent navigation failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Planning Errors.

	// ErrUnknownLocation indicates a destination could not be resolved
	// to any location or alias on the campus map.
	ErrUnknownLocation = errors.New("unknown location")

	// ErrNoPathFound indicates the goal is unreachable from the start.
	ErrNoPathFound = errors.New("no path found")

	// ErrBrokenPath indicates a path step has no matching edge in the map.
	// The router and the map disagree; this is an internal fault.
	ErrBrokenPath = errors.New("broken path")

	// ErrInvalidMap indicates the map definition violates a graph invariant.
	ErrInvalidMap = errors.New("invalid campus map")

	// Execution Errors.

	// ErrAlreadyRunning indicates a navigation session is already active.
	ErrAlreadyRunning = errors.New("navigation already running")

	// ErrHardwareFault indicates a motor or sensor I/O failure.
	ErrHardwareFault = errors.New("hardware fault")

	// ErrInvalidSettings indicates navigation settings failed validation.
	ErrInvalidSettings = errors.New("invalid navigation settings")
)
