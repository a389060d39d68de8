package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	diagSpeed    int
	diagDuration time.Duration
	diagCount    int
	diagInterval time.Duration
)

var diagCmd = &cobra.Command{
	Use:   "diag",
	Short: "Hardware diagnostics",
	Long:  `Exercise the motors and the ultrasonic sensor without planning a route.`,
}

var diagMotorsCmd = &cobra.Command{
	Use:   "motors",
	Short: "Run each motor direction briefly",
	Long: `Drives forward, backward, left and right for --duration each, stopping
between moves. Lift the robot off the floor first.`,
	Args: cobra.NoArgs,
	RunE: runDiagMotors,
}

var diagSensorCmd = &cobra.Command{
	Use:   "sensor",
	Short: "Take ultrasonic readings",
	Args:  cobra.NoArgs,
	RunE:  runDiagSensor,
}

func init() {
	diagMotorsCmd.Flags().IntVar(&diagSpeed, "speed", 40, "duty cycle percentage, 1-100")
	diagMotorsCmd.Flags().DurationVar(&diagDuration, "duration", time.Second, "time per move")
	diagSensorCmd.Flags().IntVarP(&diagCount, "count", "n", 5, "number of readings")
	diagSensorCmd.Flags().DurationVar(&diagInterval, "interval", 500*time.Millisecond, "time between readings")
	diagCmd.AddCommand(diagMotorsCmd)
	diagCmd.AddCommand(diagSensorCmd)
	rootCmd.AddCommand(diagCmd)
}

func runDiagMotors(cmd *cobra.Command, _ []string) (err error) {
	if diagSpeed < 1 || diagSpeed > 100 {
		return fmt.Errorf("speed must be between 1 and 100, got %d", diagSpeed)
	}
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	motion := rt.Motion

	defer func() {
		if stopErr := motion.Stop(); stopErr != nil {
			err = errors.Join(err, fmt.Errorf("stopping motors: %w", stopErr))
		}
	}()

	cmd.Printf("Drivers: %s\n", rt.Drivers)
	moves := []struct {
		name string
		run  func(context.Context, int) error
	}{
		{"forward", motion.Forward},
		{"backward", motion.Backward},
		{"turn left", motion.TurnLeft},
		{"turn right", motion.TurnRight},
	}
	for _, m := range moves {
		cmd.Printf("  %-10s ", m.name)
		if err := m.run(ctx, diagSpeed); err != nil {
			cmd.Println("FAILED")
			return fmt.Errorf("%s: %w", m.name, err)
		}
		if err := rt.Clock.Sleep(ctx, diagDuration); err != nil {
			cmd.Println("interrupted")
			return err
		}
		if err := motion.Stop(); err != nil {
			cmd.Println("FAILED")
			return fmt.Errorf("stop after %s: %w", m.name, err)
		}
		cmd.Println("OK")
		if err := rt.Clock.Sleep(ctx, diagDuration/2); err != nil {
			return err
		}
	}
	return nil
}

func runDiagSensor(cmd *cobra.Command, _ []string) error {
	if diagCount < 1 {
		return fmt.Errorf("count must be at least 1, got %d", diagCount)
	}
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	cmd.Printf("Drivers: %s, obstacle threshold %.0f cm\n", rt.Drivers, rt.ObstacleThresholdCM)
	obstacles := 0
	for i := 1; i <= diagCount; i++ {
		reading, err := rt.Sensor.Read(ctx)
		if err != nil {
			return fmt.Errorf("reading %d: %w", i, err)
		}
		switch {
		case reading.Timeout:
			cmd.Printf("  [%d] no echo\n", i)
		case reading.IsObstacle(rt.ObstacleThresholdCM):
			obstacles++
			cmd.Printf("  [%d] %.1f cm  OBSTACLE\n", i, reading.Centimetres)
		default:
			cmd.Printf("  [%d] %.1f cm\n", i, reading.Centimetres)
		}
		if i < diagCount {
			if err := rt.Clock.Sleep(ctx, diagInterval); err != nil {
				return err
			}
		}
	}
	cmd.Printf("%d of %d readings within threshold\n", obstacles, diagCount)
	return nil
}
