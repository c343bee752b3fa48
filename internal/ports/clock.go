package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Sleeper blocks for a duration or until the context is cancelled. Polling
// commands depend on this rather than time.Sleep so tests can run the wait
// loop instantly.
type Sleeper func(ctx context.Context, d time.Duration) error

// SystemSleeper waits on a timer, returning early with the context's error
// on cancellation.
func SystemSleeper(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
