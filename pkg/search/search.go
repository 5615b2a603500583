// Package search implements animated linear and binary search.
package search

import (
	"context"
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
)

// Algorithm names a search algorithm.
type Algorithm string

const (
	Linear Algorithm = "linear"
	Binary Algorithm = "binary"
)

// NotFound is the index reported when the target is absent.
const NotFound = -1

// Defaults for generated search sequences.
const (
	DefaultSize     = 20
	DefaultMaxValue = 100
)

// Algorithms returns every supported algorithm in menu order.
func Algorithms() []Algorithm {
	return []Algorithm{Linear, Binary}
}

// ParseAlgorithm resolves a user-supplied algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(name))); a {
	case Linear, Binary:
		return a, nil
	}
	return "", errors.New(errors.ErrCodeInvalidAlgorithm, "unknown search algorithm %q", name)
}

// StepKind classifies a search step.
type StepKind int

const (
	// Visit shows the element being inspected.
	Visit StepKind = iota
	// Found reports that the visited element equals the target.
	Found
	// Checked reports that the visited element was ruled out.
	Checked
)

func (k StepKind) String() string {
	switch k {
	case Visit:
		return "visit"
	case Found:
		return "found"
	case Checked:
		return "checked"
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

// Step is one observable unit of a search.
type Step struct {
	Kind  StepKind
	Index int
}

// Steps yields the visits of alg looking for target in values. Binary
// search assumes values is sorted ascending.
func Steps(values []int, target int, alg Algorithm) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		switch alg {
		case Linear:
			for i, v := range values {
				if !yield(Step{Visit, i}) {
					return
				}
				if v == target {
					yield(Step{Found, i})
					return
				}
				if !yield(Step{Checked, i}) {
					return
				}
			}
		case Binary:
			lo, hi := 0, len(values)-1
			for lo <= hi {
				mid := (lo + hi) / 2
				if !yield(Step{Visit, mid}) {
					return
				}
				if values[mid] == target {
					yield(Step{Found, mid})
					return
				}
				if !yield(Step{Checked, mid}) {
					return
				}
				if values[mid] < target {
					lo = mid + 1
				} else {
					hi = mid - 1
				}
			}
		}
	}
}

// Find returns the index reported by alg for target, or NotFound.
func Find(values []int, target int, alg Algorithm) int {
	for s := range Steps(values, target, alg) {
		if s.Kind == Found {
			return s.Index
		}
	}
	return NotFound
}

// Generate returns size values in [1, maxValue], sorted when sorted is set.
func Generate(rng *rand.Rand, size, maxValue int, sorted bool) []int {
	out := make([]int, size)
	for i := range out {
		out[i] = rng.IntN(maxValue) + 1
	}
	if sorted {
		slices.Sort(out)
	}
	return out
}

// ResultText is the message shown when a search finishes.
func ResultText(index, target int) string {
	if index == NotFound {
		return fmt.Sprintf("%d not found in array", target)
	}
	return fmt.Sprintf("Found %d at index %d", target, index)
}

// Timing holds the fixed delays of a search run. They do not follow the
// speed setting.
type Timing struct {
	Linear  time.Duration
	Binary  time.Duration
	Presort time.Duration
}

// DefaultTiming returns the standard search delays.
func DefaultTiming() Timing {
	return Timing{
		Linear:  300 * time.Millisecond,
		Binary:  500 * time.Millisecond,
		Presort: 500 * time.Millisecond,
	}
}

// Run animates alg over values. Before a binary search, values is sorted in
// place, re-rendered, and the run pauses for timing.Presort. It returns the
// index found or NotFound, and always reports the result text unless the
// run was cancelled.
func Run(ctx context.Context, values []int, target int, alg Algorithm, pacer *anim.Pacer, sink render.Sink, timing Timing, logger *log.Logger) (int, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := sink.Emit(ctx, render.Reset(render.ScopeSearch, values)); err != nil {
		return NotFound, err
	}
	if err := sink.Emit(ctx, render.Output(render.ScopeSearch, "")); err != nil {
		return NotFound, err
	}

	delay := timing.Linear
	if alg == Binary {
		delay = timing.Binary
		slices.Sort(values)
		if err := sink.Emit(ctx, render.Reset(render.ScopeSearch, values)); err != nil {
			return NotFound, err
		}
		if err := pacer.Sleep(ctx, timing.Presort); err != nil {
			return NotFound, err
		}
	}

	logger.Debug("search started", "algorithm", alg, "target", target, "size", len(values))
	result := NotFound
	for step := range Steps(values, target, alg) {
		if err := pacer.Checkpoint(ctx); err != nil {
			return NotFound, err
		}
		var err error
		switch step.Kind {
		case Visit:
			if err = sink.Emit(ctx, render.Highlight(render.ScopeSearch, render.StateCurrent, step.Index)); err == nil {
				err = pacer.Sleep(ctx, delay)
			}
		case Found:
			result = step.Index
			err = markOnly(ctx, sink, render.StateFound, step.Index)
		case Checked:
			err = markOnly(ctx, sink, render.StateChecked, step.Index)
		}
		if err != nil {
			return NotFound, err
		}
	}

	logger.Debug("search finished", "algorithm", alg, "index", result)
	return result, sink.Emit(ctx, render.Output(render.ScopeSearch, ResultText(result, target)))
}

func markOnly(ctx context.Context, sink render.Sink, state render.State, index int) error {
	if err := sink.Emit(ctx, render.Clear(render.ScopeSearch, index)); err != nil {
		return err
	}
	return sink.Emit(ctx, render.Mark(render.ScopeSearch, state, index))
}
