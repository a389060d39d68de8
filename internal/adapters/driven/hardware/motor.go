package hardware

import (
	"context"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
	"github.com/custodia-labs/campusnav/internal/logger"
)

// PWMFrequency is the carrier frequency for the H-bridge inputs.
const PWMFrequency = physic.KiloHertz

// Ensure Motor implements the interface.
var _ driven.MotionController = (*Motor)(nil)

// Motor drives two IBT-2 H-bridges. Each wheel has a forward and a
// backward PWM pin; at most one of them carries duty at a time.
type Motor struct {
	mu            sync.Mutex
	leftForward   outputPin
	leftBackward  outputPin
	rightForward  outputPin
	rightBackward outputPin
	closed        bool
}

// NewMotor takes the four PWM pins and starts them all at zero duty.
func NewMotor(leftForward, leftBackward, rightForward, rightBackward outputPin) (*Motor, error) {
	m := &Motor{
		leftForward:   leftForward,
		leftBackward:  leftBackward,
		rightForward:  rightForward,
		rightBackward: rightBackward,
	}
	for _, p := range m.pins() {
		if err := p.PWM(0, PWMFrequency); err != nil {
			return nil, fmt.Errorf("starting PWM on %s: %w", p.Name(), err)
		}
	}
	logger.Info("Motor driver initialised on %s/%s %s/%s",
		leftForward.Name(), leftBackward.Name(), rightForward.Name(), rightBackward.Name())
	return m, nil
}

// Set applies duty to both wheels. Negative values reverse the wheel.
func (m *Motor) Set(_ context.Context, left, right int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("motor driver is shut down")
	}
	return m.set(left, right)
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

// Stop sets both motors to zero duty.
func (m *Motor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	return m.set(0, 0)
}

// Shutdown stops the motors and halts every pin. Safe to call more than once.
func (m *Motor) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true

	err := m.set(0, 0)
	for _, p := range m.pins() {
		if haltErr := p.Halt(); haltErr != nil && err == nil {
			err = fmt.Errorf("halting %s: %w", p.Name(), haltErr)
		}
	}
	logger.Info("Motor driver shut down")
	return err
}

func (m *Motor) set(left, right int) error {
	if err := drive(m.leftForward, m.leftBackward, left); err != nil {
		return fmt.Errorf("left motor: %w", err)
	}
	if err := drive(m.rightForward, m.rightBackward, right); err != nil {
		return fmt.Errorf("right motor: %w", err)
	}
	logger.Debug("Motors: L=%+4d%% R=%+4d%%", left, right)
	return nil
}

func (m *Motor) pins() []outputPin {
	return []outputPin{m.leftForward, m.leftBackward, m.rightForward, m.rightBackward}
}

// drive puts duty on one side of the bridge and zeroes the other.
func drive(forward, backward outputPin, percent int) error {
	percent = max(-100, min(100, percent))
	on, off := forward, backward
	if percent < 0 {
		on, off = backward, forward
		percent = -percent
	}
	if err := off.PWM(0, PWMFrequency); err != nil {
		return fmt.Errorf("%s: %w", off.Name(), err)
	}
	if err := on.PWM(dutyFromPercent(percent), PWMFrequency); err != nil {
		return fmt.Errorf("%s: %w", on.Name(), err)
	}
	return nil
}

// dutyFromPercent converts 0..100 to a gpio.Duty.
func dutyFromPercent(percent int) gpio.Duty {
	return gpio.Duty(int64(gpio.DutyMax) * int64(percent) / 100)
}
