package engine

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/sorting"
)

// Sorter animates the sorting algorithms over a generated sequence.
type Sorter struct {
	base
	rng    *rand.Rand
	size   int
	lo, hi int
	values []int
}

func newSorter(opts Options) *Sorter {
	s := &Sorter{
		base: newBase("sort", opts, opts.SortDelay),
		rng:  opts.rng(1),
		size: opts.SortSize,
		lo:   opts.SortMinValue,
		hi:   opts.SortMaxValue,
	}
	s.values = sorting.Generate(s.rng, s.size, s.lo, s.hi)
	_ = s.emit(context.Background(), render.Reset(render.ScopeSort, s.values))
	return s
}

// Values returns the sequence as of the last completed change.
func (s *Sorter) Values() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.values)
}

// Generate replaces the sequence with fresh random values.
func (s *Sorter) Generate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.busyLocked(ctx); err != nil {
		return err
	}
	return s.setLocked(ctx, sorting.Generate(s.rng, s.size, s.lo, s.hi))
}

// SetSize changes the sequence length and regenerates.
func (s *Sorter) SetSize(ctx context.Context, n int) error {
	if err := errors.ValidateArraySize(n); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.busyLocked(ctx); err != nil {
		return err
	}
	s.size = n
	return s.setLocked(ctx, sorting.Generate(s.rng, s.size, s.lo, s.hi))
}

// SetValues replaces the sequence with explicit values.
func (s *Sorter) SetValues(ctx context.Context, values []int) error {
	if err := errors.ValidateArraySize(len(values)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.busyLocked(ctx); err != nil {
		return err
	}
	s.size = len(values)
	return s.setLocked(ctx, slices.Clone(values))
}

func (s *Sorter) setLocked(ctx context.Context, values []int) error {
	s.values = values
	return s.emit(ctx, render.Reset(render.ScopeSort, s.values))
}

// SetSpeed maps a speed setting to the step delay. It may be called while
// a run is active and applies from the next step.
func (s *Sorter) SetSpeed(speed int) error {
	if err := errors.ValidateSpeed(speed); err != nil {
		return err
	}
	s.pacer.SetSpeed(speed)
	return nil
}

// Delay returns the step delay in effect.
func (s *Sorter) Delay() time.Duration {
	return s.pacer.Delay()
}

// Start begins sorting the current sequence in the background. The run
// works on a copy that replaces the sequence when it ends.
func (s *Sorter) Start(ctx context.Context, alg sorting.Algorithm) (<-chan error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := slices.Clone(s.values)
	return s.launch(ctx, string(alg), len(work), func(ctx context.Context) error {
		s.pacer.Pause.Resume()
		err := sorting.Run(ctx, work, alg, s.pacer, s.sink, s.logger)
		if ctx.Err() == nil {
			s.mu.Lock()
			s.values = work
			s.mu.Unlock()
		}
		return err
	})
}

// Run sorts the current sequence and waits for the run to finish.
func (s *Sorter) Run(ctx context.Context, alg sorting.Algorithm) error {
	ch, err := s.Start(ctx, alg)
	if err != nil {
		return err
	}
	return wait(ctx, ch)
}

// Reset cancels any active run, clears the pause and regenerates.
func (s *Sorter) Reset(ctx context.Context) error {
	s.stop()
	s.pacer.Pause.Resume()
	return s.Generate(ctx)
}
