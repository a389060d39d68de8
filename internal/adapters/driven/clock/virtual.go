package clock

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
)

// Ensure Virtual implements the interface.
var _ driven.Clock = (*Virtual)(nil)

// Virtual is a clock whose Sleep advances time instantly.
// Used by tests and dry runs.
type Virtual struct {
	mu     sync.Mutex
	now    time.Time
	slept  []time.Duration
	onTick func(d time.Duration)
}

// NewVirtual creates a virtual clock starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Sleep advances virtual time by d without blocking, then runs the tick hook.
func (v *Virtual) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	if d > 0 {
		v.now = v.now.Add(d)
	}
	v.slept = append(v.slept, d)
	hook := v.onTick
	v.mu.Unlock()

	if hook != nil {
		hook(d)
	}
	return ctx.Err()
}

// Advance moves virtual time forward without recording a sleep.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.now = v.now.Add(d)
}

// OnSleep registers a hook run after every Sleep. Pass nil to clear.
func (v *Virtual) OnSleep(hook func(d time.Duration)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onTick = hook
}

// Sleeps returns every duration passed to Sleep, in order.
func (v *Virtual) Sleeps() []time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]time.Duration(nil), v.slept...)
}

// Total returns the sum of all slept durations.
func (v *Virtual) Total() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	var total time.Duration
	for _, d := range v.slept {
		total += d
	}
	return total
}
