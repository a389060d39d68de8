// Package cli provides the campusnav command-line interface built on cobra.
// It is a driving adapter: commands translate flags and arguments into calls
// on the driving ports and render the results.
package cli

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
	"github.com/custodia-labs/campusnav/internal/core/ports/driving"
	"github.com/custodia-labs/campusnav/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var verbose bool

// settingsService is available to every command. It only touches the config file.
var settingsService driving.SettingsService

// Runtime is everything that needs the map, the motors or the history database.
// It is built on first use so that commands like "settings set" keep working
// when the hardware configuration is broken.
type Runtime struct {
	// Navigation plans and drives routes.
	Navigation driving.NavigationService

	// Metrics serves the Prometheus registry. Optional.
	Metrics http.Handler

	// Motion, Sensor and Clock are the raw drivers, used by diagnostics.
	Motion driven.MotionController
	Sensor driven.DistanceSensor
	Clock  driven.Clock

	// ObstacleThresholdCM is the configured obstacle distance.
	ObstacleThresholdCM float64

	// Drivers names the driver set in use, "hardware" or "simulated".
	Drivers string

	// Close stops the motors and releases storage.
	Close func() error
}

// RuntimeFactory builds the runtime.
type RuntimeFactory func(ctx context.Context) (*Runtime, error)

var (
	runtimeFactory RuntimeFactory
	runtimeMu      sync.Mutex
	activeRuntime  *Runtime
)

var errRuntimeNotConfigured = errors.New("navigation runtime not configured")

var rootCmd = &cobra.Command{
	Use:   "campusnav",
	Short: "Campus guide robot navigation",
	Long: `campusnav drives a two-wheeled guide robot between named campus locations.

It plans the shortest route over the campus map, turns it into motion
instructions and executes them while watching the ultrasonic sensor for
obstacles. It can also be driven from the terminal UI or over MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		logger.SetTimestamps(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by "campusnav version".
func SetVersion(v string) {
	version = v
}

// SetSettingsService sets the settings service used by all commands.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetRuntimeFactory registers the function that builds the navigation runtime.
func SetRuntimeFactory(f RuntimeFactory) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	runtimeFactory = f
	activeRuntime = nil
}

// loadRuntime returns the runtime, building it on first call.
func loadRuntime(ctx context.Context) (*Runtime, error) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()

	if activeRuntime != nil {
		return activeRuntime, nil
	}
	if runtimeFactory == nil {
		return nil, errRuntimeNotConfigured
	}
	rt, err := runtimeFactory(ctx)
	if err != nil {
		return nil, err
	}
	activeRuntime = rt
	return rt, nil
}

// closeRuntime releases the runtime if one was built.
func closeRuntime() error {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()

	rt := activeRuntime
	activeRuntime = nil
	if rt == nil || rt.Close == nil {
		return nil
	}
	return rt.Close()
}

// Execute runs the root command and releases the runtime afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeRuntime(); cerr != nil {
		logger.Error("shutdown: %v", cerr)
		if err == nil {
			err = cerr
		}
	}
	return err
}
