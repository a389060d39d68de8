// Command campusnav drives the campus guide robot.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/campusnav/internal/adapters/driven/clock"
	"github.com/custodia-labs/campusnav/internal/adapters/driven/config/file"
	"github.com/custodia-labs/campusnav/internal/adapters/driven/hardware"
	"github.com/custodia-labs/campusnav/internal/adapters/driven/mapfile"
	"github.com/custodia-labs/campusnav/internal/adapters/driven/metrics"
	"github.com/custodia-labs/campusnav/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/cli"
	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
	"github.com/custodia-labs/campusnav/internal/core/services"
	"github.com/custodia-labs/campusnav/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

const (
	keyDataDir      = "storage.data_dir"
	keyHistoryLimit = "storage.history_limit"
)

func main() {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		os.Exit(1)
	}
	settingsService := services.NewSettingsService(configStore)

	cli.SetVersion(version)
	cli.SetSettingsService(settingsService)
	cli.SetRuntimeFactory(func(ctx context.Context) (*cli.Runtime, error) {
		return buildRuntime(ctx, configStore, settingsService)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildRuntime loads the map, opens the drivers and the history database,
// and assembles the navigation service.
func buildRuntime(ctx context.Context, configStore driven.ConfigStore, settingsService *services.SettingsService) (*cli.Runtime, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if err := settingsService.Validate(settings); err != nil {
		return nil, err
	}

	campus, err := services.LoadCampusMap(ctx, mapfile.NewSource(settings.Map.Path), settings.Map.EdgePolicy)
	if err != nil {
		return nil, err
	}

	drivers, err := hardware.Detect(settings.Hardware)
	if err != nil {
		return nil, err
	}
	logger.Debug("Drivers: %s", drivers.Describe())

	store, err := sqlite.NewStore(configStore.GetString(keyDataDir))
	if err != nil {
		_ = drivers.Motion.Shutdown()
		return nil, fmt.Errorf("opening history: %w", err)
	}

	reg := metrics.NewRegistry()
	clk := clock.System{}
	exec := services.NewNavigationExecutor(drivers.Motion, drivers.Sensor, clk, reg, settings.Motion)

	nav, err := services.NewNavigationService(campus, exec, string(settings.StartLocation), store.HistoryStore(), reg, clk)
	if err != nil {
		return nil, errors.Join(err, drivers.Motion.Shutdown(), store.Close())
	}
	if keep := configStore.GetInt(keyHistoryLimit); keep != 0 {
		nav.SetHistoryLimit(keep)
	}
	if pos, ok := nav.RestorePosition(ctx); ok {
		logger.Info("Resuming at %s", pos)
	}

	return &cli.Runtime{
		Navigation:          nav,
		Metrics:             reg.Handler(),
		Motion:              drivers.Motion,
		Sensor:              drivers.Sensor,
		Clock:               clk,
		ObstacleThresholdCM: settings.Motion.ObstacleThresholdCM,
		Drivers:             drivers.Describe(),
		Close: func() error {
			return errors.Join(nav.Close(), store.Close())
		},
	}, nil
}
