package domain

import (
	"fmt"
	"strings"
)

// LocationID is the canonical name of a physical location on the campus map.
type LocationID string

// String returns the string representation.
func (l LocationID) String() string {
	return string(l)
}

// DisplayName returns the location name with underscores rendered as spaces.
func (l LocationID) DisplayName() string {
	return strings.ReplaceAll(string(l), "_", " ")
}

// Action defines the motion required to traverse an edge.
type Action string

// Available edge actions.
const (
	// ActionForward drives straight ahead for the edge distance.
	ActionForward Action = "forward"

	// ActionTurnLeft turns left in place, then drives the edge distance.
	ActionTurnLeft Action = "turn_left"

	// ActionTurnRight turns right in place, then drives the edge distance.
	ActionTurnRight Action = "turn_right"

	// ActionStairsUp is a virtual edge up a staircase. Never traversed autonomously.
	ActionStairsUp Action = "stairs_up"

	// ActionStairsDown is a virtual edge down a staircase. Never traversed autonomously.
	ActionStairsDown Action = "stairs_down"
)

// IsValid returns true if the action is recognised.
func (a Action) IsValid() bool {
	switch a {
	case ActionForward, ActionTurnLeft, ActionTurnRight, ActionStairsUp, ActionStairsDown:
		return true
	default:
		return false
	}
}

// IsTurn returns true for in-place turn actions.
func (a Action) IsTurn() bool {
	return a == ActionTurnLeft || a == ActionTurnRight
}

// IsStairs returns true for staircase actions.
func (a Action) IsStairs() bool {
	return a == ActionStairsUp || a == ActionStairsDown
}

// String returns the string representation.
func (a Action) String() string {
	return string(a)
}

// Description returns a human-readable description of the action.
func (a Action) Description() string {
	switch a {
	case ActionForward:
		return "Forward"
	case ActionTurnLeft:
		return "Turn left"
	case ActionTurnRight:
		return "Turn right"
	case ActionStairsUp:
		return "Stairs up"
	case ActionStairsDown:
		return "Stairs down"
	default:
		return "Unknown"
	}
}

// Edge is a directed traversal between two locations.
// Edges are not guaranteed to be symmetric.
type Edge struct {
	From LocationID
	To   LocationID

	// Distance is the travel distance in metres. Never negative.
	Distance float64

	// Action is the motion used to traverse the edge.
	Action Action

	// Angle is the signed heading change in degrees. Informational for turns.
	Angle float64
}

// Path is an ordered walk from start to goal. A single-element path means
// start and goal are the same location.
type Path []LocationID

// Start returns the first location, or "" for an empty path.
func (p Path) Start() LocationID {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// Goal returns the last location, or "" for an empty path.
func (p Path) Goal() LocationID {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// String renders the path as "A -> B -> C".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = string(id)
	}
	return strings.Join(parts, " -> ")
}

// Route is a path together with its total distance.
type Route struct {
	Path     Path
	Distance float64
}

// Instruction is a single motion step derived from one consecutive path pair.
type Instruction struct {
	From     LocationID `json:"from"`
	To       LocationID `json:"to"`
	Action   Action     `json:"action"`
	Distance float64    `json:"distance"`
	Angle    float64    `json:"angle,omitempty"`
}

// String renders the instruction for progress output.
func (i Instruction) String() string {
	switch {
	case i.Action.IsTurn() && i.Distance > 0:
		return fmt.Sprintf("%s %.0f° +%.1fm to %s", i.Action, abs(i.Angle), i.Distance, i.To)
	case i.Action.IsTurn():
		return fmt.Sprintf("%s %.0f° to %s", i.Action, abs(i.Angle), i.To)
	case i.Action.IsStairs():
		return fmt.Sprintf("%s to %s", i.Action, i.To)
	default:
		return fmt.Sprintf("%s %.1fm to %s", i.Action, i.Distance, i.To)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// LocationInfo describes a location for listings.
type LocationInfo struct {
	ID      LocationID `json:"id"`
	Name    string     `json:"name"`
	Aliases []string   `json:"aliases,omitempty"`
}

// RoutePlan is a previewed route with its compiled instructions.
type RoutePlan struct {
	From         LocationID    `json:"from"`
	To           LocationID    `json:"to"`
	Path         Path          `json:"path"`
	Distance     float64       `json:"distance"`
	Instructions []Instruction `json:"instructions"`
}
