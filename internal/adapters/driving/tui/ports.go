// Package tui provides an interactive terminal user interface for campusnav.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/campusnav/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Navigation drives the robot and reports its position.
	Navigation driving.NavigationService

	// Settings manages navigation settings. Optional; the settings view
	// is read-only placeholder text without it.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(navigation driving.NavigationService, settings driving.SettingsService) *Ports {
	return &Ports{
		Navigation: navigation,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Navigation == nil {
		return ErrMissingNavigationService
	}
	return nil
}
