package cycle

import (
	"context"
	"time"

	"github.com/jannisp/hourglass/internal/core"
)

type systemClock struct{}

// SystemClock is the real-time core.Clock used outside of tests.
func SystemClock() core.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Sleep waits on a timer so a cancelled context interrupts the hourly wait
// immediately instead of blocking until the next boundary.
func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
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
