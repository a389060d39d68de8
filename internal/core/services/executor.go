package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
	"github.com/custodia-labs/campusnav/internal/logger"
)

// NavigationExecutor drives the motors through a compiled instruction list
// while watching the distance sensor. It owns its motion controller and
// sensor exclusively and runs at most one session at a time.
//
// Cancellation is cooperative: Cancel stops the motors immediately, but the
// control loop only observes the request at the next instruction boundary or
// sensor poll, so the latency is bounded by the poll interval.
type NavigationExecutor struct {
	motion  driven.MotionController
	sensor  driven.DistanceSensor
	clock   driven.Clock
	metrics driven.NavigationMetrics
	cfg     domain.MotionSettings

	running atomic.Bool

	mu     sync.RWMutex
	active *executorRun
}

// executorRun is the mutable state of one Run call.
type executorRun struct {
	cancelled atomic.Bool

	mu      sync.RWMutex
	session domain.NavigationSession
	step    *domain.Instruction
}

// stepOutcome is the result of executing one instruction.
type stepOutcome struct {
	state domain.ExecutionState
	fault error
}

var continueRun = stepOutcome{state: domain.StateRunning}

// NewNavigationExecutor creates an executor. Metrics may be nil.
func NewNavigationExecutor(
	motion driven.MotionController,
	sensor driven.DistanceSensor,
	clock driven.Clock,
	metrics driven.NavigationMetrics,
	cfg domain.MotionSettings,
) *NavigationExecutor {
	return &NavigationExecutor{
		motion:  motion,
		sensor:  sensor,
		clock:   clock,
		metrics: metrics,
		cfg:     cfg,
	}
}

// Run executes instructions in order and returns when the session reaches a
// terminal state. A second Run while one is active returns ErrAlreadyRunning.
// Blocked, stairs, cancellation and hardware faults are reported through the
// returned report's State, not as errors.
//
//nolint:gocyclo // State machine dispatch
func (e *NavigationExecutor) Run(ctx context.Context, instructions []domain.Instruction) (*domain.ExecutionReport, error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, domain.ErrAlreadyRunning
	}
	defer e.running.Store(false)

	run := &executorRun{
		session: domain.NavigationSession{
			ID:        uuid.New().String(),
			Total:     len(instructions),
			State:     domain.StateRunning,
			StartedAt: e.clock.Now(),
		},
	}
	if len(instructions) > 0 {
		run.session.Destination = instructions[len(instructions)-1].To
	}

	e.mu.Lock()
	e.active = run
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.active = nil
		e.mu.Unlock()
	}()

	if e.metrics != nil {
		e.metrics.SessionStarted()
	}

	report := &domain.ExecutionReport{
		SessionID: run.session.ID,
		Total:     len(instructions),
		StartedAt: run.session.StartedAt,
	}
	logger.Section("Navigation " + run.session.ID)
	logger.Info("Starting navigation with %d steps", len(instructions))

	outcome := continueRun
	for i := range instructions {
		instr := instructions[i]

		if e.isCancelled(ctx, run) {
			outcome = stepOutcome{state: domain.StateCancelled}
			report.Halted = &instr
			break
		}

		run.setStep(i, &instr)
		logger.Info("Step %d/%d: %s -> %s (%s)", i+1, len(instructions), instr.From, instr.To, instr)

		outcome = e.execute(ctx, run, instr, report)
		if outcome.state != domain.StateRunning {
			report.Halted = &instr
			break
		}
		report.Completed = i + 1
		run.setStep(i+1, nil)

		if i < len(instructions)-1 && e.cfg.SettleDelay > 0 {
			if err := e.clock.Sleep(ctx, e.cfg.SettleDelay); err != nil {
				outcome = stepOutcome{state: domain.StateCancelled}
				break
			}
		}
	}

	if outcome.state == domain.StateRunning {
		outcome.state = domain.StateCompleted
	}
	if err := e.motion.Stop(); err != nil {
		logger.Warn("Final motor stop failed: %v", err)
		if outcome.state == domain.StateCompleted {
			outcome = stepOutcome{state: domain.StateFailed, fault: hardwareFault("stop motors", err)}
		}
	}

	report.State = outcome.state
	report.Fault = outcome.fault
	report.FinishedAt = e.clock.Now()
	run.finish(outcome, report.FinishedAt)
	if e.metrics != nil {
		e.metrics.SessionFinished(domain.StatusFromState(report.State), report.Duration())
	}

	switch report.State {
	case domain.StateCompleted:
		logger.Info("Navigation complete in %s", report.Duration())
	case domain.StateFailed:
		logger.Warn("Navigation failed after %d/%d steps: %v", report.Completed, report.Total, report.Fault)
	default:
		logger.Info("Navigation ended %s after %d/%d steps", report.State, report.Completed, report.Total)
	}

	return report, nil
}

// Cancel requests the active session to stop and commands the motors to
// stop immediately. Returns false if no session is running.
func (e *NavigationExecutor) Cancel() bool {
	e.mu.RLock()
	run := e.active
	e.mu.RUnlock()
	if run == nil {
		return false
	}

	run.cancelled.Store(true)
	if err := e.motion.Stop(); err != nil {
		logger.Warn("Emergency stop failed: %v", err)
	}
	logger.Info("Navigation cancel requested")
	return true
}

// IsRunning returns true while a session is active.
func (e *NavigationExecutor) IsRunning() bool {
	return e.running.Load()
}

// Session returns a copy of the active session and its current instruction.
// Returns false when idle.
func (e *NavigationExecutor) Session() (domain.NavigationSession, *domain.Instruction, bool) {
	e.mu.RLock()
	run := e.active
	e.mu.RUnlock()
	if run == nil {
		return domain.NavigationSession{}, nil, false
	}

	run.mu.RLock()
	defer run.mu.RUnlock()
	var step *domain.Instruction
	if run.step != nil {
		s := *run.step
		step = &s
	}
	return run.session, step, true
}

func (e *NavigationExecutor) execute(
	ctx context.Context,
	run *executorRun,
	instr domain.Instruction,
	report *domain.ExecutionReport,
) stepOutcome {
	switch instr.Action {
	case domain.ActionForward:
		return e.forward(ctx, run, instr.Distance, report)

	case domain.ActionTurnLeft, domain.ActionTurnRight:
		if out := e.turn(ctx, run, instr); out.state != domain.StateRunning {
			return out
		}
		if instr.Distance > 0 {
			return e.forward(ctx, run, instr.Distance, report)
		}
		return continueRun

	case domain.ActionStairsUp, domain.ActionStairsDown:
		logger.Warn("Stairs between %s and %s: manual intervention required", instr.From, instr.To)
		if err := e.motion.Stop(); err != nil {
			return e.fail("stop motors", err)
		}
		return stepOutcome{state: domain.StateManualInterventionRequired}

	default:
		e.stopQuietly()
		return stepOutcome{
			state: domain.StateFailed,
			fault: fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, instr.Action),
		}
	}
}

// forward drives straight for distance metres, polling the sensor. After an
// obstacle clears, motion resumes for the remaining time only.
//
//nolint:gocyclo // Obstacle recovery sub-state
func (e *NavigationExecutor) forward(
	ctx context.Context,
	run *executorRun,
	distance float64,
	report *domain.ExecutionReport,
) stepOutcome {
	remaining := time.Duration(distance * float64(e.cfg.TimePerMeter))
	if remaining <= 0 {
		return continueRun
	}
	logger.Debug("Moving forward %.1fm (~%s)", distance, remaining)

	// A cancel during the previous turn's settle must not restart the motors.
	if e.isCancelled(ctx, run) {
		e.stopQuietly()
		return stepOutcome{state: domain.StateCancelled}
	}
	if err := e.motion.Forward(ctx, e.cfg.ForwardSpeed); err != nil {
		return e.fail("forward", err)
	}

	for remaining > 0 {
		if e.isCancelled(ctx, run) {
			e.stopQuietly()
			return stepOutcome{state: domain.StateCancelled}
		}

		blocked, err := e.sensor.IsObstacleWithin(ctx, e.cfg.ObstacleThresholdCM)
		if err != nil {
			if ctx.Err() != nil {
				e.stopQuietly()
				return stepOutcome{state: domain.StateCancelled}
			}
			return e.fail("read sensor", err)
		}

		if blocked {
			report.Obstacles++
			logger.Warn("Obstacle detected, stopping")
			if err := e.motion.Stop(); err != nil {
				return e.fail("stop motors", err)
			}
			if err := e.clock.Sleep(ctx, e.cfg.GracePeriod); err != nil {
				return stepOutcome{state: domain.StateCancelled}
			}
			if e.isCancelled(ctx, run) {
				return stepOutcome{state: domain.StateCancelled}
			}

			still, err := e.sensor.IsObstacleWithin(ctx, e.cfg.ObstacleThresholdCM)
			if err != nil {
				if ctx.Err() != nil {
					return stepOutcome{state: domain.StateCancelled}
				}
				return e.fail("read sensor", err)
			}
			if e.metrics != nil {
				e.metrics.ObstacleEncountered(!still)
			}
			if still {
				logger.Warn("Path blocked, %s of travel remaining", remaining)
				return stepOutcome{state: domain.StateBlocked}
			}

			logger.Info("Path clear, resuming for %s", remaining)
			if err := e.motion.Forward(ctx, e.cfg.ForwardSpeed); err != nil {
				return e.fail("forward", err)
			}
		}

		tick := min(e.cfg.PollInterval, remaining)
		started := e.clock.Now()
		if err := e.clock.Sleep(ctx, tick); err != nil {
			e.stopQuietly()
			return stepOutcome{state: domain.StateCancelled}
		}
		elapsed := e.clock.Now().Sub(started)
		if elapsed < tick {
			elapsed = tick
		}
		remaining -= elapsed
	}

	if err := e.motion.Stop(); err != nil {
		return e.fail("stop motors", err)
	}
	return continueRun
}

// turn spins in place for |angle|/90 times the 90 degree turn time.
// An angle of zero turns a nominal 90 degrees.
func (e *NavigationExecutor) turn(ctx context.Context, run *executorRun, instr domain.Instruction) stepOutcome {
	angle := math.Abs(instr.Angle)
	if angle == 0 {
		angle = 90
	}
	remaining := time.Duration(angle / 90 * float64(e.cfg.TimePer90Turn))
	logger.Debug("Turning %s %.0f degrees (~%s)", instr.Action, angle, remaining)

	var err error
	if instr.Action == domain.ActionTurnLeft {
		err = e.motion.TurnLeft(ctx, e.cfg.TurnSpeed)
	} else {
		err = e.motion.TurnRight(ctx, e.cfg.TurnSpeed)
	}
	if err != nil {
		return e.fail(string(instr.Action), err)
	}

	for remaining > 0 {
		if e.isCancelled(ctx, run) {
			e.stopQuietly()
			return stepOutcome{state: domain.StateCancelled}
		}
		tick := min(e.cfg.PollInterval, remaining)
		if err := e.clock.Sleep(ctx, tick); err != nil {
			e.stopQuietly()
			return stepOutcome{state: domain.StateCancelled}
		}
		remaining -= tick
	}

	if err := e.motion.Stop(); err != nil {
		return e.fail("stop motors", err)
	}
	if e.cfg.TurnSettle > 0 {
		if err := e.clock.Sleep(ctx, e.cfg.TurnSettle); err != nil {
			return stepOutcome{state: domain.StateCancelled}
		}
	}
	return continueRun
}

func (e *NavigationExecutor) isCancelled(ctx context.Context, run *executorRun) bool {
	return run.cancelled.Load() || ctx.Err() != nil
}

// fail stops the motors best-effort and records a hardware fault.
func (e *NavigationExecutor) fail(op string, err error) stepOutcome {
	e.stopQuietly()
	return stepOutcome{state: domain.StateFailed, fault: hardwareFault(op, err)}
}

func (e *NavigationExecutor) stopQuietly() {
	if err := e.motion.Stop(); err != nil {
		logger.Warn("Motor stop failed: %v", err)
	}
}

func hardwareFault(op string, err error) error {
	if errors.Is(err, domain.ErrHardwareFault) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrHardwareFault, err)
}

func (r *executorRun) setStep(index int, step *domain.Instruction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session.Current = index
	r.step = step
}

func (r *executorRun) finish(out stepOutcome, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session.State = out.state
	r.session.Fault = out.fault
	r.session.FinishedAt = &at
	r.step = nil
}

// Shutdown cancels any active session and releases the motion controller.
func (e *NavigationExecutor) Shutdown() error {
	e.Cancel()
	return e.motion.Shutdown()
}
