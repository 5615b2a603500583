// Package engine is the facade over the animated sub-engines.
//
// A [Visualizer] owns five independent engines: sorting, searching,
// pathfinding, tree traversal and the linear structures. Each keeps only
// its own data and its own pacer, and they all report to one
// [render.Sink]. Any number of Visualizers may coexist; the HTTP server
// creates one per session.
//
// At most one run is active per engine. Starting a second run, or changing
// an engine's data while it runs, fails with an error coded
// [errors.ErrCodeBusy]. Reset cancels the active run and waits for it to
// stop before touching the data.
package engine

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/pathfind"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/search"
	"github.com/matzehuels/algoviz/pkg/sorting"
	"github.com/matzehuels/algoviz/pkg/tree"
)

// Options configures a Visualizer. Zero fields take the defaults of
// DefaultOptions.
type Options struct {
	Sink   render.Sink
	Clock  anim.Clock
	Logger *log.Logger
	// Seed seeds the generators of every engine; 0 picks a random seed.
	Seed uint64

	SortSize     int
	SortMinValue int
	SortMaxValue int
	SortDelay    time.Duration

	SearchSize     int
	SearchMaxValue int
	SearchTiming   search.Timing

	MazeDensity float64
	PathTiming  pathfind.Timing

	TreeDelay time.Duration
}

// DefaultOptions returns the standard configuration with output discarded.
func DefaultOptions() Options {
	return Options{
		Sink:           render.Discard,
		Clock:          anim.Real,
		Logger:         log.Default(),
		SortSize:       sorting.DefaultSize,
		SortMinValue:   sorting.DefaultMinValue,
		SortMaxValue:   sorting.DefaultMaxValue,
		SortDelay:      anim.DefaultDelay,
		SearchSize:     search.DefaultSize,
		SearchMaxValue: search.DefaultMaxValue,
		SearchTiming:   search.DefaultTiming(),
		MazeDensity:    pathfind.DefaultMazeDensity,
		PathTiming:     pathfind.DefaultTiming(),
		TreeDelay:      tree.DefaultVisitDelay,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Sink == nil {
		o.Sink = d.Sink
	}
	if o.Clock == nil {
		o.Clock = d.Clock
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	if o.SortSize <= 0 {
		o.SortSize = d.SortSize
	}
	if o.SortMaxValue <= 0 {
		o.SortMinValue, o.SortMaxValue = d.SortMinValue, d.SortMaxValue
	}
	if o.SortDelay <= 0 {
		o.SortDelay = d.SortDelay
	}
	if o.SearchSize <= 0 {
		o.SearchSize = d.SearchSize
	}
	if o.SearchMaxValue <= 0 {
		o.SearchMaxValue = d.SearchMaxValue
	}
	if o.SearchTiming == (search.Timing{}) {
		o.SearchTiming = d.SearchTiming
	}
	if o.MazeDensity <= 0 {
		o.MazeDensity = d.MazeDensity
	}
	if o.PathTiming == (pathfind.Timing{}) {
		o.PathTiming = d.PathTiming
	}
	if o.TreeDelay <= 0 {
		o.TreeDelay = d.TreeDelay
	}
	return o
}

// rng returns the generator for one engine; engines never share one.
func (o Options) rng(stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(o.Seed, stream))
}

// Visualizer bundles the sub-engines.
type Visualizer struct {
	Sort       *Sorter
	Search     *Searcher
	Grid       *Pathfinder
	Tree       *TreeEngine
	Structures *Structures
}

// New creates a Visualizer with freshly generated sequences, an empty grid
// and the sample tree, and renders each of them.
func New(opts Options) *Visualizer {
	opts = opts.withDefaults()
	return &Visualizer{
		Sort:       newSorter(opts),
		Search:     newSearcher(opts),
		Grid:       newPathfinder(opts),
		Tree:       newTreeEngine(opts),
		Structures: newStructures(opts),
	}
}

// Stop cancels every active run and waits for them to end.
func (v *Visualizer) Stop() {
	v.Sort.stop()
	v.Search.stop()
	v.Grid.stop()
	v.Tree.stop()
}
