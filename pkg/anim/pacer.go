package anim

import (
	"context"
	"sync/atomic"
	"time"
)

// Speed slider bounds and the delay used before the slider is touched.
const (
	MinSpeed     = 1
	MaxSpeed     = 10
	DefaultDelay = 200 * time.Millisecond
)

// DelayForSpeed maps a speed slider value linearly to a step delay:
// 400ms − speed·35ms. Values outside [MinSpeed, MaxSpeed] are clamped.
func DelayForSpeed(speed int) time.Duration {
	speed = min(max(speed, MinSpeed), MaxSpeed)
	return time.Duration(400-speed*35) * time.Millisecond
}

// Pacer schedules the suspension points of one engine's runs.
// It is safe to change the delay or toggle the pause token from another
// goroutine while a run is in flight.
type Pacer struct {
	Clock Clock
	Pause *Pause

	delay atomic.Int64
}

// NewPacer creates a pacer with the given clock and initial step delay.
// A nil clock means Real.
func NewPacer(clock Clock, delay time.Duration) *Pacer {
	if clock == nil {
		clock = Real
	}
	p := &Pacer{Clock: clock, Pause: &Pause{}}
	p.delay.Store(int64(delay))
	return p
}

// Delay returns the current step delay.
func (p *Pacer) Delay() time.Duration {
	return time.Duration(p.delay.Load())
}

// SetDelay changes the step delay; it takes effect at the next step.
func (p *Pacer) SetDelay(d time.Duration) {
	p.delay.Store(int64(d))
}

// SetSpeed changes the step delay using DelayForSpeed.
func (p *Pacer) SetSpeed(speed int) {
	p.SetDelay(DelayForSpeed(speed))
}

// Step suspends for the current step delay.
func (p *Pacer) Step(ctx context.Context) error {
	return p.Clock.Sleep(ctx, p.Delay())
}

// Sleep suspends for a fixed duration independent of the speed setting.
func (p *Pacer) Sleep(ctx context.Context, d time.Duration) error {
	return p.Clock.Sleep(ctx, d)
}

// Checkpoint stalls while the pause token is paused.
func (p *Pacer) Checkpoint(ctx context.Context) error {
	if p.Pause == nil {
		return ctx.Err()
	}
	return p.Pause.Wait(ctx)
}
