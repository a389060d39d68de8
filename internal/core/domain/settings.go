package domain

import "time"

const unknownDescription = "Unknown"

// HardwareMode selects how motor and sensor drivers are chosen at startup.
type HardwareMode string

// Available hardware modes.
const (
	// HardwareModeAuto uses GPIO drivers when the host supports them,
	// otherwise falls back to simulation.
	HardwareModeAuto HardwareMode = "auto"

	// HardwareModeSimulated always uses simulated drivers.
	HardwareModeSimulated HardwareMode = "simulated"

	// HardwareModeHardware requires GPIO drivers and fails without them.
	HardwareModeHardware HardwareMode = "hardware"
)

// IsValid returns true if the hardware mode is recognised.
func (m HardwareMode) IsValid() bool {
	switch m {
	case HardwareModeAuto, HardwareModeSimulated, HardwareModeHardware:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m HardwareMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m HardwareMode) Description() string {
	switch m {
	case HardwareModeAuto:
		return "Auto (GPIO if available, else simulated)"
	case HardwareModeSimulated:
		return "Simulated (no motors are driven)"
	case HardwareModeHardware:
		return "Hardware (GPIO required)"
	default:
		return unknownDescription
	}
}

// AllHardwareModes returns all available hardware modes.
func AllHardwareModes() []HardwareMode {
	return []HardwareMode{
		HardwareModeAuto,
		HardwareModeSimulated,
		HardwareModeHardware,
	}
}

// AllEdgePolicies returns all available edge policies.
func AllEdgePolicies() []EdgePolicy {
	return []EdgePolicy{
		EdgePolicyAllowOneWay,
		EdgePolicyRequireReverse,
	}
}

// MotionSettings holds dead-reckoning and obstacle-handling parameters.
type MotionSettings struct {
	// TimePerMeter is how long the robot drives to cover one metre.
	TimePerMeter time.Duration `validate:"gt=0s"`

	// TimePer90Turn is how long an in-place 90 degree turn takes.
	TimePer90Turn time.Duration `validate:"gt=0s"`

	// ForwardSpeed is the PWM duty used for straight driving.
	ForwardSpeed int `validate:"gte=1,lte=100"`

	// TurnSpeed is the PWM duty used for turning.
	TurnSpeed int `validate:"gte=1,lte=100"`

	// ObstacleThresholdCM is the distance below which an obstacle is reported.
	ObstacleThresholdCM float64 `validate:"gt=0,lte=400"`

	// PollInterval is the sensor polling cadence during forward motion.
	// It also bounds cancellation latency.
	PollInterval time.Duration `validate:"gt=0s,lte=200ms"`

	// GracePeriod is the wait after an obstacle before re-checking.
	GracePeriod time.Duration `validate:"gte=0s"`

	// SettleDelay is the pause between consecutive instructions.
	SettleDelay time.Duration `validate:"gte=0s"`

	// TurnSettle is the pause after a turn before a chained forward step.
	TurnSettle time.Duration `validate:"gte=0s"`
}

// MapSettings selects and validates the campus map.
type MapSettings struct {
	// Path is a map file. Empty uses the built-in campus map.
	Path string

	// EdgePolicy controls symmetry validation.
	EdgePolicy EdgePolicy `validate:"oneof=allow_one_way require_reverse"`
}

// HardwareSettings holds GPIO pin assignments for the motor driver and sensor.
type HardwareSettings struct {
	Mode HardwareMode `validate:"oneof=auto simulated hardware"`

	LeftForwardPin  string `validate:"required"`
	LeftBackwardPin string `validate:"required"`

	RightForwardPin  string `validate:"required"`
	RightBackwardPin string `validate:"required"`

	TriggerPin string `validate:"required"`
	EchoPin    string `validate:"required"`
}

// NavigationSettings holds all navigation configuration.
type NavigationSettings struct {
	// StartLocation is the assumed position at startup.
	StartLocation LocationID `validate:"required"`

	Motion   MotionSettings
	Map      MapSettings
	Hardware HardwareSettings
}

// DefaultNavigationSettings returns settings calibrated for the reference robot.
func DefaultNavigationSettings() NavigationSettings {
	return NavigationSettings{
		StartLocation: "Entrance",
		Motion: MotionSettings{
			TimePerMeter:        2 * time.Second,
			TimePer90Turn:       1500 * time.Millisecond,
			ForwardSpeed:        50,
			TurnSpeed:           40,
			ObstacleThresholdCM: 20,
			PollInterval:        100 * time.Millisecond,
			GracePeriod:         2 * time.Second,
			SettleDelay:         500 * time.Millisecond,
			TurnSettle:          300 * time.Millisecond,
		},
		Map: MapSettings{
			EdgePolicy: EdgePolicyAllowOneWay,
		},
		Hardware: HardwareSettings{
			Mode:             HardwareModeAuto,
			LeftForwardPin:   "GPIO12", // BCM numbering
			LeftBackwardPin:  "GPIO13",
			RightForwardPin:  "GPIO18",
			RightBackwardPin: "GPIO19",
			TriggerPin:       "GPIO23",
			EchoPin:          "GPIO24",
		},
	}
}
