package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// NavigateInput is the input schema for the navigate tool.
type NavigateInput struct {
	Destination string `json:"destination" jsonschema:"location name or alias to drive to, e.g. director or cs lab"`
	From        string `json:"from,omitempty" jsonschema:"optional location the robot is at before starting"`
}

// NavigateOutput is the output schema for the navigate tool.
type NavigateOutput struct {
	SessionID      string   `json:"session_id,omitempty"`
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	Success        bool     `json:"success"`
	Path           []string `json:"path,omitempty"`
	Distance       float64  `json:"distance"`
	StepsCompleted int      `json:"steps_completed"`
	StepsTotal     int      `json:"steps_total"`
	Position       string   `json:"position"`
}

// CancelInput is the input schema for the cancel_navigation tool.
type CancelInput struct{}

// CancelOutput is the output schema for the cancel_navigation tool.
type CancelOutput struct {
	Cancelled bool   `json:"cancelled"`
	Message   string `json:"message"`
}

// PlanInput is the input schema for the plan_route tool.
type PlanInput struct {
	Destination string `json:"destination" jsonschema:"location name or alias to route to"`
	From        string `json:"from,omitempty" jsonschema:"start location (default: the robot's current position)"`
}

// PlanOutput is the output schema for the plan_route tool.
type PlanOutput struct {
	From         string               `json:"from"`
	To           string               `json:"to"`
	Path         []string             `json:"path"`
	Distance     float64              `json:"distance"`
	Instructions []domain.Instruction `json:"instructions"`
	Steps        []string             `json:"steps"`
}

// StatusInput is the input schema for the navigation_status tool.
type StatusInput struct{}

// RelocateInput is the input schema for the relocate tool.
type RelocateInput struct {
	Location string `json:"location" jsonschema:"location the robot has been placed at"`
}

// RelocateOutput is the output schema for the relocate tool.
type RelocateOutput struct {
	Position string `json:"position"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "navigate",
		Description: "Drive the robot to a campus location. Blocks until the robot arrives or stops.",
	}, s.handleNavigate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cancel_navigation",
		Description: "Stop the motors and cancel the navigation in progress",
	}, s.handleCancel)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "plan_route",
		Description: "Preview the shortest route and its motion instructions without moving",
	}, s.handlePlan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "navigation_status",
		Description: "Report the robot's position and the progress of any active navigation",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "relocate",
		Description: "Tell the robot where it is after it has been moved by hand",
	}, s.handleRelocate)
}

// handleNavigate handles the navigate tool invocation. Navigation outcomes,
// including failures, are reported in the output rather than as tool errors.
func (s *Server) handleNavigate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NavigateInput,
) (*mcp.CallToolResult, NavigateOutput, error) {
	nav := s.ports.Navigation
	result := nav.NavigateFrom(ctx, input.From, input.Destination)

	output := NavigateOutput{
		SessionID:      result.SessionID,
		Status:         result.Status.String(),
		Message:        result.Message,
		Success:        result.Status.IsSuccess(),
		Path:           pathStrings(result.Path),
		Distance:       result.Distance,
		StepsCompleted: result.StepsCompleted,
		StepsTotal:     result.StepsTotal,
		Position:       nav.Status().Position.String(),
	}
	return nil, output, nil
}

func (s *Server) handleCancel(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ CancelInput,
) (*mcp.CallToolResult, CancelOutput, error) {
	if s.ports.Navigation.CancelCurrent() {
		return nil, CancelOutput{Cancelled: true, Message: "Stop requested"}, nil
	}
	return nil, CancelOutput{Message: "No navigation in progress"}, nil
}

func (s *Server) handlePlan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlanInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	plan, err := s.ports.Navigation.Plan(ctx, input.From, input.Destination)
	if err != nil {
		return nil, PlanOutput{}, err
	}
	return nil, planOutput(plan), nil
}

func (s *Server) handleStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, domain.NavigationStatusSnapshot, error) {
	return nil, s.ports.Navigation.Status(), nil
}

func (s *Server) handleRelocate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RelocateInput,
) (*mcp.CallToolResult, RelocateOutput, error) {
	id, err := s.ports.Navigation.Relocate(input.Location)
	if err != nil {
		return nil, RelocateOutput{}, err
	}
	return nil, RelocateOutput{Position: id.String()}, nil
}

func planOutput(plan *domain.RoutePlan) PlanOutput {
	steps := make([]string, len(plan.Instructions))
	for i, instr := range plan.Instructions {
		steps[i] = instr.String()
	}
	return PlanOutput{
		From:         plan.From.String(),
		To:           plan.To.String(),
		Path:         pathStrings(plan.Path),
		Distance:     plan.Distance,
		Instructions: plan.Instructions,
		Steps:        steps,
	}
}

func pathStrings(p domain.Path) []string {
	if len(p) == 0 {
		return nil
	}
	out := make([]string, len(p))
	for i, id := range p {
		out[i] = id.String()
	}
	return out
}
