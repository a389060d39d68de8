package driven

import "context"

// MotionController drives the robot's two wheel motors.
// Duty values range from -100 (full reverse) to 100 (full forward).
type MotionController interface {
	// Set applies duty to the left and right motors.
	// Values outside -100..100 are clamped.
	Set(ctx context.Context, left, right int) error

	// Forward drives both motors forward at speed.
	Forward(ctx context.Context, speed int) error

	// Backward drives both motors in reverse at speed.
	Backward(ctx context.Context, speed int) error

	// TurnLeft spins in place to the left at speed.
	TurnLeft(ctx context.Context, speed int) error

	// TurnRight spins in place to the right at speed.
	TurnRight(ctx context.Context, speed int) error

	// Stop sets both motors to zero duty.
	Stop() error

	// Shutdown stops the motors and releases actuation resources.
	// Safe to call more than once.
	Shutdown() error
}
