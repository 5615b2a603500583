package engine

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/observability"
	"github.com/matzehuels/algoviz/pkg/render"
)

// base is the run bookkeeping shared by the animated sub-engines. mu guards
// the embedding engine's data as well as the in-flight run; a non-nil done
// channel means a run is active.
type base struct {
	name   string
	sink   render.Sink
	pacer  *anim.Pacer
	logger *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func newBase(name string, opts Options, delay time.Duration) base {
	return base{
		name:   name,
		sink:   opts.Sink,
		pacer:  anim.NewPacer(opts.Clock, delay),
		logger: opts.Logger.With("engine", name),
	}
}

// busyLocked returns a BUSY error if a run is active. mu must be held.
func (b *base) busyLocked(ctx context.Context) error {
	if b.done == nil {
		return nil
	}
	observability.Run().OnRunRejected(ctx, b.name)
	return errors.Busy(b.name)
}

// launch starts run in a new goroutine unless one is already active. It
// must be called with mu held; run executes without it. The returned
// channel yields run's error once and is then closed.
func (b *base) launch(ctx context.Context, algorithm string, size int, run func(ctx context.Context) error) (<-chan error, error) {
	if err := b.busyLocked(ctx); err != nil {
		return nil, err
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	b.cancel, b.done = cancel, done

	result := make(chan error, 1)
	hooks := observability.Run()
	hooks.OnRunStart(ctx, b.name, algorithm, size)
	start := time.Now()

	go func() {
		err := run(runCtx)
		cancel()
		hooks.OnRunComplete(ctx, b.name, algorithm, time.Since(start), err)
		if err != nil && !errors.Is(err, errors.ErrCodeBusy) {
			b.logger.Debug("run ended", "algorithm", algorithm, "err", err)
		}

		b.mu.Lock()
		b.cancel, b.done = nil, nil
		b.mu.Unlock()
		close(done)

		result <- err
		close(result)
	}()
	return result, nil
}

// stop cancels the active run, if any, and waits for it to unwind.
func (b *base) stop() {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	// A paused run is woken by cancellation, so this cannot block forever.
	<-done
}

// Running reports whether a run is in flight.
func (b *base) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done != nil
}

// TogglePause pauses or resumes the active run and reports whether it is
// now paused.
func (b *base) TogglePause() bool {
	return b.pacer.Pause.Toggle()
}

// Paused reports whether runs are paused.
func (b *base) Paused() bool {
	return b.pacer.Pause.Paused()
}

// wait blocks until ch yields or ctx is done.
func wait(ctx context.Context, ch <-chan error) error {
	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *base) emit(ctx context.Context, evs ...render.Event) error {
	for _, ev := range evs {
		if err := b.sink.Emit(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
