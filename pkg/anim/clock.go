package anim

import (
	"context"
	"time"
)

// Clock performs the timed suspensions of an animated run.
type Clock interface {
	// Sleep waits for d or until ctx is done, whichever comes first.
	Sleep(ctx context.Context, d time.Duration) error
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f ClockFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// Real waits on wall-clock timers.
var Real Clock = ClockFunc(func(ctx context.Context, d time.Duration) error {
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
})

// Instant never waits. It still reports cancellation so that a cancelled
// run stops at its next suspension point.
var Instant Clock = ClockFunc(func(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
})
