package hardware

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"periph.io/x/conn/v3/gpio"

	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
	"github.com/custodia-labs/campusnav/internal/logger"
)

const (
	// triggerPulse is the HC-SR04 trigger pulse width.
	triggerPulse = 10 * time.Microsecond

	// echoTimeout bounds each wait on the echo line.
	echoTimeout = 100 * time.Millisecond

	// halfSpeedOfSound converts echo seconds to centimetres (34300 cm/s / 2).
	halfSpeedOfSound = 17150.0

	// MinPingInterval keeps successive pings from hearing each other's echo.
	MinPingInterval = 60 * time.Millisecond
)

// Ensure Ultrasonic implements the interface.
var _ driven.DistanceSensor = (*Ultrasonic)(nil)

// Ultrasonic reads an HC-SR04 distance sensor.
// Reads faster than MinPingInterval return the previous measurement.
type Ultrasonic struct {
	mu      sync.Mutex
	trigger outputPin
	echo    inputPin
	limiter *rate.Limiter
	last    domain.DistanceReading
	pinged  bool

	now   func() time.Time
	pause func(time.Duration)
}

// NewUltrasonic configures the trigger low and the echo as a pulled-down input.
func NewUltrasonic(trigger outputPin, echo inputPin) (*Ultrasonic, error) {
	if err := trigger.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("configuring trigger %s: %w", trigger.Name(), err)
	}
	if err := echo.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configuring echo %s: %w", echo.Name(), err)
	}
	logger.Info("Ultrasonic sensor initialised on trigger=%s echo=%s", trigger.Name(), echo.Name())
	return &Ultrasonic{
		trigger: trigger,
		echo:    echo,
		limiter: rate.NewLimiter(rate.Every(MinPingInterval), 1),
		now:     time.Now,
		pause:   time.Sleep,
	}, nil
}

// Read pings once and measures the echo.
func (u *Ultrasonic) Read(ctx context.Context) (domain.DistanceReading, error) {
	if err := ctx.Err(); err != nil {
		return domain.DistanceReading{}, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.limiter.AllowN(u.now(), 1) && u.pinged {
		return u.last, nil
	}

	reading, err := u.ping()
	if err != nil {
		return domain.DistanceReading{}, err
	}
	u.last = reading
	u.pinged = true
	return reading, nil
}

// IsObstacleWithin reports whether the next reading is closer than thresholdCM.
func (u *Ultrasonic) IsObstacleWithin(ctx context.Context, thresholdCM float64) (bool, error) {
	r, err := u.Read(ctx)
	if err != nil {
		return false, err
	}
	return r.IsObstacle(thresholdCM), nil
}

func (u *Ultrasonic) ping() (domain.DistanceReading, error) {
	if err := u.trigger.Out(gpio.High); err != nil {
		return domain.DistanceReading{}, fmt.Errorf("trigger high: %w", err)
	}
	u.pause(triggerPulse)
	if err := u.trigger.Out(gpio.Low); err != nil {
		return domain.DistanceReading{}, fmt.Errorf("trigger low: %w", err)
	}

	start, ok := u.waitFor(gpio.High)
	if !ok {
		logger.Debug("Ultrasonic: no echo start")
		return domain.DistanceReading{Timeout: true}, nil
	}
	end, ok := u.waitFor(gpio.Low)
	if !ok {
		logger.Debug("Ultrasonic: echo did not end")
		return domain.DistanceReading{Timeout: true}, nil
	}

	cm := end.Sub(start).Seconds() * halfSpeedOfSound
	return domain.DistanceReading{Centimetres: math.Round(cm*100) / 100}, nil
}

// waitFor spins until the echo line reaches level or echoTimeout passes.
// It returns the time the level was observed.
func (u *Ultrasonic) waitFor(level gpio.Level) (time.Time, bool) {
	deadline := u.now().Add(echoTimeout)
	for {
		t := u.now()
		if u.echo.Read() == level {
			return t, true
		}
		if t.After(deadline) {
			return t, false
		}
	}
}
