// Package clock provides time sources for the navigation executor.
package clock

import (
	"context"
	"time"

	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clock = System{}

// System is the wall clock.
type System struct{}

// Now returns the current time.
func (System) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d or until ctx is done.
func (System) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
