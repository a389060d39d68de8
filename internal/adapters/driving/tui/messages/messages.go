// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main menu.
	ViewMenu ViewType = iota
	// ViewDestinations lists locations to drive to.
	ViewDestinations
	// ViewNavigation shows a navigation in progress and its result.
	ViewNavigation
	// ViewHistory lists past navigation sessions.
	ViewHistory
	// ViewSettings shows and edits navigation settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDestinations:
		return "destinations"
	case ViewNavigation:
		return "navigation"
	case ViewHistory:
		return "history"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// LocationsLoaded carries the campus locations.
type LocationsLoaded struct {
	Locations []domain.LocationInfo
}

// RoutePlanned carries a route preview.
type RoutePlanned struct {
	Plan *domain.RoutePlan
	Err  error
}

// NavigateRequested asks the app to drive to a destination.
type NavigateRequested struct {
	Destination domain.LocationID
}

// NavigationFinished carries the outcome of a navigation.
type NavigationFinished struct {
	Result *domain.NavigationResult
}

// StatusPolled carries a snapshot taken while a navigation runs.
type StatusPolled struct {
	Status domain.NavigationStatusSnapshot
}

// CancelRequested signals the user asked to stop the robot.
type CancelRequested struct {
	Accepted bool
}

// HistoryLoaded carries recent navigation records.
type HistoryLoaded struct {
	Records []domain.NavigationRecord
	Err     error
}

// SettingsLoaded carries the navigation settings.
type SettingsLoaded struct {
	Settings *domain.NavigationSettings
	Err      error
}

// SettingsSaved signals a setting was saved.
type SettingsSaved struct {
	Key string
	Err error
}
