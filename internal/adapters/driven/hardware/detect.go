package hardware

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/custodia-labs/campusnav/internal/adapters/driven/simulated"
	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
	"github.com/custodia-labs/campusnav/internal/logger"
)

// Drivers is the motion and sensing pair chosen at startup.
type Drivers struct {
	Motion    driven.MotionController
	Sensor    driven.DistanceSensor
	Simulated bool
}

// Describe returns a short label for status output.
func (d *Drivers) Describe() string {
	if d.Simulated {
		return "simulated"
	}
	return "hardware"
}

// openHardware is replaced in tests.
var openHardware = Open

// Detect selects drivers according to settings.Mode.
// In auto mode a hardware failure falls back to simulation.
func Detect(settings domain.HardwareSettings) (*Drivers, error) {
	switch settings.Mode {
	case domain.HardwareModeSimulated:
		return simulatedDrivers(), nil
	case domain.HardwareModeHardware:
		return openHardware(settings)
	case domain.HardwareModeAuto, "":
		d, err := openHardware(settings)
		if err != nil {
			logger.Warn("GPIO unavailable, running simulated: %v", err)
			return simulatedDrivers(), nil
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: unknown hardware mode %q", domain.ErrInvalidSettings, settings.Mode)
	}
}

// Open initialises the periph host and claims the configured pins.
func Open(settings domain.HardwareSettings) (*Drivers, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: initialising GPIO host: %w", domain.ErrHardwareFault, err)
	}

	pins := make(map[string]gpio.PinIO, 6)
	for _, name := range []string{
		settings.LeftForwardPin, settings.LeftBackwardPin,
		settings.RightForwardPin, settings.RightBackwardPin,
		settings.TriggerPin, settings.EchoPin,
	} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("%w: pin %q not found", domain.ErrHardwareFault, name)
		}
		pins[name] = p
	}

	motor, err := NewMotor(
		pins[settings.LeftForwardPin], pins[settings.LeftBackwardPin],
		pins[settings.RightForwardPin], pins[settings.RightBackwardPin],
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrHardwareFault, err)
	}
	sensor, err := NewUltrasonic(pins[settings.TriggerPin], pins[settings.EchoPin])
	if err != nil {
		_ = motor.Shutdown()
		return nil, fmt.Errorf("%w: %w", domain.ErrHardwareFault, err)
	}

	return &Drivers{Motion: motor, Sensor: sensor}, nil
}

func simulatedDrivers() *Drivers {
	logger.Info("Using simulated motor and sensor drivers")
	return &Drivers{
		Motion:    simulated.NewMotor(),
		Sensor:    simulated.NewSensor(),
		Simulated: true,
	}
}
