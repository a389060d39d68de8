// Package mcp provides an MCP (Model Context Protocol) server adapter for campusnav.
// It lets AI assistants send the robot to campus locations, preview routes
// and stop a navigation in progress.
package mcp

import "errors"

// ErrMissingNavigationService is returned when the navigation service is not provided.
var ErrMissingNavigationService = errors.New("mcp: navigation service is required")
