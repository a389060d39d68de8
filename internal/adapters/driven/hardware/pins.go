package hardware

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// outputPin is the subset of gpio.PinIO used to drive outputs.
type outputPin interface {
	Name() string
	Out(l gpio.Level) error
	PWM(duty gpio.Duty, f physic.Frequency) error
	Halt() error
}

// inputPin is the subset of gpio.PinIO used to sample the echo line.
type inputPin interface {
	Name() string
	In(pull gpio.Pull, edge gpio.Edge) error
	Read() gpio.Level
}
