// Package sorting implements the six animated comparison sorts.
//
// Each algorithm is exposed as a lazy step sequence (see [Steps]) that
// mutates the input slice in place and yields a [Step] after every unit of
// work it wants shown. [Run] drives such a sequence against an [anim.Pacer]
// and a [render.Sink], translating steps into bar highlights, value updates
// and sorted marks.
//
// The step order of every algorithm, including tie-breaking and the points
// at which a run may be paused, is fixed and covered by tests:
//
//   - bubble: adjacent compare with strict >, largest settles at the end of each pass
//   - selection: strict < when tracking the minimum
//   - insertion: shifts while the left element is strictly greater than the key
//   - merge: top-down, left-biased on ties (<=)
//   - quick: Lomuto partition, last element as pivot, strict <
//   - heap: max-heap, left child preferred over right on ties
package sorting

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/algoviz/pkg/errors"
)

// Algorithm names a sorting algorithm.
type Algorithm string

const (
	Bubble    Algorithm = "bubble"
	Selection Algorithm = "selection"
	Insertion Algorithm = "insertion"
	Merge     Algorithm = "merge"
	Quick     Algorithm = "quick"
	Heap      Algorithm = "heap"
)

// Algorithms returns every supported algorithm in menu order.
func Algorithms() []Algorithm {
	return []Algorithm{Bubble, Selection, Insertion, Merge, Quick, Heap}
}

// ParseAlgorithm resolves a user-supplied algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Algorithms() {
		if a == known {
			return a, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidAlgorithm, "unknown sorting algorithm %q", name)
}

// StepKind classifies a sorting step.
type StepKind int

const (
	// Checkpoint is a point where a paused run stalls.
	Checkpoint StepKind = iota
	// Compare shows two (or one) elements being compared.
	Compare
	// Swap shows elements about to be exchanged.
	Swap
	// Commit reports that the values at Indices have been written.
	Commit
	// Clear drops the transient highlight of Indices.
	Clear
	// Sorted marks Indices as being in their final position.
	Sorted
)

var stepKindNames = [...]string{"checkpoint", "compare", "swap", "commit", "clear", "sorted"}

func (k StepKind) String() string {
	if int(k) < len(stepKindNames) {
		return stepKindNames[k]
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

// Step is one observable unit of work.
type Step struct {
	Kind    StepKind
	Indices []int
}

func (s Step) String() string {
	return fmt.Sprintf("%s%v", s.Kind, s.Indices)
}

// Default bounds for generated sequences.
const (
	DefaultSize     = 50
	DefaultMinValue = 10
	DefaultMaxValue = 289
)

// Generate returns size pseudo-random values in [lo, hi].
func Generate(rng *rand.Rand, size, lo, hi int) []int {
	if hi < lo {
		lo, hi = hi, lo
	}
	out := make([]int, size)
	for i := range out {
		out[i] = lo + rng.IntN(hi-lo+1)
	}
	return out
}
