package driven

import (
	"context"
	"time"
)

// Clock is the time source for motion timing.
// Tests substitute a virtual clock so no real time elapses.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep blocks for d or until ctx is done, whichever comes first.
	// Returns ctx.Err() if interrupted.
	Sleep(ctx context.Context, d time.Duration) error
}
