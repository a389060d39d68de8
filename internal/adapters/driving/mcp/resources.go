package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriScheme = "campus://"

	// historyLimit is how many records the history resource returns.
	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "locations",
		Name:        "locations",
		Description: "Every campus location with its aliases",
		MIMEType:    "application/json",
	}, s.handleLocationsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent navigation sessions, most recent first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "routes/{from}/{to}",
		Name:        "route",
		Description: "Planned route between two locations",
		MIMEType:    "application/json",
	}, s.handleRouteResource)
}

func (s *Server) handleLocationsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Navigation.Locations(), "locations")
}

func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Navigation.History(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return jsonResource(req.Params.URI, records, "history")
}

func (s *Server) handleRouteResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	from, to := extractRouteEndpoints(req.Params.URI)
	if from == "" || to == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	plan, err := s.ports.Navigation.Plan(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("planning route: %w", err)
	}
	return jsonResource(req.Params.URI, planOutput(plan), "route")
}

func jsonResource(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRouteEndpoints extracts both endpoints from a URI like
// campus://routes/{from}/{to}. Endpoints may be percent-encoded.
func extractRouteEndpoints(uri string) (string, string) {
	const prefix = uriScheme + "routes/"

	if !strings.HasPrefix(uri, prefix) {
		return "", ""
	}

	parts := strings.Split(strings.TrimPrefix(uri, prefix), "/")
	if len(parts) != 2 {
		return "", ""
	}

	from, err := url.PathUnescape(parts[0])
	if err != nil {
		return "", ""
	}
	to, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", ""
	}
	return from, to
}
