package anim

import (
	"context"
	"sync"
)

// Pause is a cooperative pause token. The zero value is ready to use and
// starts in the running state.
type Pause struct {
	mu     sync.Mutex
	paused bool
	resume chan struct{}
}

// Pause stalls future checkpoints until Resume is called.
func (p *Pause) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.set(true)
}

// Resume releases every waiter.
func (p *Pause) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.set(false)
}

// Toggle flips the state and reports whether the token is now paused.
func (p *Pause) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.set(!p.paused)
	return p.paused
}

// set must be called with mu held.
func (p *Pause) set(paused bool) {
	if p.paused == paused {
		return
	}
	p.paused = paused
	if paused {
		p.resume = make(chan struct{})
		return
	}
	close(p.resume)
}

// Paused reports the current state.
func (p *Pause) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Wait returns immediately when running; otherwise it blocks until Resume
// or until ctx is done.
func (p *Pause) Wait(ctx context.Context) error {
	p.mu.Lock()
	if !p.paused {
		p.mu.Unlock()
		return ctx.Err()
	}
	ch := p.resume
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	}
}
