package simulated

import (
	"context"
	"sync"

	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
	"github.com/custodia-labs/campusnav/internal/logger"
)

// Ensure Motor implements the interface.
var _ driven.MotionController = (*Motor)(nil)

// MotorCommand is one recorded duty change.
type MotorCommand struct {
	Left  int
	Right int
}

// IsStop returns true for a zero-duty command.
func (c MotorCommand) IsStop() bool {
	return c.Left == 0 && c.Right == 0
}

// Motor is a simulated two-wheel motion controller.
type Motor struct {
	mu       sync.Mutex
	commands []MotorCommand
	current  MotorCommand
	closed   bool
}

// NewMotor creates a simulated motor.
func NewMotor() *Motor {
	return &Motor{}
}

// Set records the duty for both motors. Values are clamped to -100..100.
func (m *Motor) Set(_ context.Context, left, right int) error {
	m.record(clampDuty(left), clampDuty(right))
	return nil
}

// Forward drives both motors forward.
func (m *Motor) Forward(ctx context.Context, speed int) error {
	return m.Set(ctx, speed, speed)
}

// Backward drives both motors in reverse.
func (m *Motor) Backward(ctx context.Context, speed int) error {
	return m.Set(ctx, -speed, -speed)
}

// TurnLeft runs the left motor backward and the right forward.
func (m *Motor) TurnLeft(ctx context.Context, speed int) error {
	return m.Set(ctx, -speed, speed)
}

// TurnRight runs the left motor forward and the right backward.
func (m *Motor) TurnRight(ctx context.Context, speed int) error {
	return m.Set(ctx, speed, -speed)
}

// Stop sets both motors to zero.
func (m *Motor) Stop() error {
	m.record(0, 0)
	return nil
}

// Shutdown stops the motors. Safe to call more than once.
func (m *Motor) Shutdown() error {
	m.mu.Lock()
	already := m.closed
	m.closed = true
	m.mu.Unlock()
	if already {
		return nil
	}
	m.record(0, 0)
	logger.Info("Simulated motor driver shut down")
	return nil
}

// Commands returns every recorded command in order.
func (m *Motor) Commands() []MotorCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MotorCommand(nil), m.commands...)
}

// Current returns the most recent command.
func (m *Motor) Current() MotorCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsShutdown reports whether Shutdown has been called.
func (m *Motor) IsShutdown() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Motor) record(left, right int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := MotorCommand{Left: left, Right: right}
	m.commands = append(m.commands, cmd)
	m.current = cmd
	logger.Debug("Motors: L=%+4d%% R=%+4d%%", left, right)
}

func clampDuty(v int) int {
	return max(-100, min(100, v))
}
