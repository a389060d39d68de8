package mcp

import (
	"net/http"

	"github.com/custodia-labs/campusnav/internal/core/ports/driving"
)

// Ports aggregates the dependencies of the MCP server.
type Ports struct {
	// Navigation plans and drives routes.
	Navigation driving.NavigationService

	// Metrics, when set, is served at /metrics in HTTP mode.
	Metrics http.Handler
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Navigation == nil {
		return ErrMissingNavigationService
	}
	return nil
}
