package engine

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/search"
)

// Searcher animates linear and binary search over a generated sequence.
type Searcher struct {
	base
	rng    *rand.Rand
	size   int
	max    int
	timing search.Timing
	values []int
	result int
}

func newSearcher(opts Options) *Searcher {
	s := &Searcher{
		base:   newBase("search", opts, 0),
		rng:    opts.rng(2),
		size:   opts.SearchSize,
		max:    opts.SearchMaxValue,
		timing: opts.SearchTiming,
		result: search.NotFound,
	}
	s.values = search.Generate(s.rng, s.size, s.max, false)
	_ = s.emit(context.Background(), render.Reset(render.ScopeSearch, s.values))
	return s
}

// Values returns the sequence as of the last completed change.
func (s *Searcher) Values() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.values)
}

// Generate replaces the sequence, pre-sorted when alg is binary, and
// clears the previous result.
func (s *Searcher) Generate(ctx context.Context, alg search.Algorithm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.busyLocked(ctx); err != nil {
		return err
	}
	return s.setLocked(ctx, search.Generate(s.rng, s.size, s.max, alg == search.Binary))
}

// SetValues replaces the sequence with explicit values.
func (s *Searcher) SetValues(ctx context.Context, values []int) error {
	if err := errors.ValidateArraySize(len(values)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.busyLocked(ctx); err != nil {
		return err
	}
	return s.setLocked(ctx, slices.Clone(values))
}

func (s *Searcher) setLocked(ctx context.Context, values []int) error {
	s.values = values
	s.result = search.NotFound
	return s.emit(ctx,
		render.Reset(render.ScopeSearch, s.values),
		render.Output(render.ScopeSearch, ""))
}

// Start validates the raw target and begins the search in the background.
// A missing or non-numeric target is rejected before anything is shown.
func (s *Searcher) Start(ctx context.Context, rawTarget string, alg search.Algorithm) (<-chan error, error) {
	target, err := errors.ParseTarget(rawTarget)
	if err != nil {
		return nil, err
	}
	return s.StartTarget(ctx, target, alg)
}

// StartTarget begins searching for target in the background.
func (s *Searcher) StartTarget(ctx context.Context, target int, alg search.Algorithm) (<-chan error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := slices.Clone(s.values)
	return s.launch(ctx, string(alg), len(work), func(ctx context.Context) error {
		idx, err := search.Run(ctx, work, target, alg, s.pacer, s.sink, s.timing, s.logger)
		if err == nil {
			s.mu.Lock()
			s.values, s.result = work, idx
			s.mu.Unlock()
		}
		return err
	})
}

// Run searches for the raw target and returns the index found, or
// search.NotFound.
func (s *Searcher) Run(ctx context.Context, rawTarget string, alg search.Algorithm) (int, error) {
	ch, err := s.Start(ctx, rawTarget, alg)
	if err != nil {
		return search.NotFound, err
	}
	if err := wait(ctx, ch); err != nil {
		return search.NotFound, err
	}
	return s.Result(), nil
}

// Result returns the index found by the last completed search.
func (s *Searcher) Result() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Reset cancels any active search and clears all highlights and the
// result text.
func (s *Searcher) Reset(ctx context.Context) error {
	s.stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, s.values)
}
