package hardware

import (
	"errors"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// fakePin records output calls and replays scripted input levels.
type fakePin struct {
	mu     sync.Mutex
	name   string
	duty   gpio.Duty
	freq   physic.Frequency
	levels []gpio.Level
	outs   []gpio.Level
	reads  int
	halted bool
	pull   gpio.Pull
	pwmErr error
	outErr error
	inErr  error
}

func newFakePin(name string) *fakePin {
	return &fakePin{name: name}
}

func (p *fakePin) Name() string { return p.name }

func (p *fakePin) Out(l gpio.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.outErr != nil {
		return p.outErr
	}
	p.outs = append(p.outs, l)
	return nil
}

func (p *fakePin) PWM(duty gpio.Duty, f physic.Frequency) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pwmErr != nil {
		return p.pwmErr
	}
	p.duty = duty
	p.freq = f
	return nil
}

func (p *fakePin) Halt() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.halted = true
	return nil
}

func (p *fakePin) In(pull gpio.Pull, _ gpio.Edge) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inErr != nil {
		return p.inErr
	}
	p.pull = pull
	return nil
}

// Read returns the scripted levels in order, then repeats the last.
func (p *fakePin) Read() gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.levels) == 0 {
		return gpio.Low
	}
	i := min(p.reads, len(p.levels)-1)
	p.reads++
	return p.levels[i]
}

func (p *fakePin) Duty() gpio.Duty {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duty
}

// echoScript builds an echo line that stays low for before reads,
// high for width reads, then low.
func echoScript(before, width int) []gpio.Level {
	levels := make([]gpio.Level, 0, before+width+1)
	for i := 0; i < before; i++ {
		levels = append(levels, gpio.Low)
	}
	for i := 0; i < width; i++ {
		levels = append(levels, gpio.High)
	}
	return append(levels, gpio.Low)
}

// steppingClock advances by step on every call.
type steppingClock struct {
	t    time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

var errPin = errors.New("pin fault")
