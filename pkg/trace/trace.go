// Package trace computes the complete event stream of one algorithm run
// without animation delays, and caches it.
//
// A trace is what a renderer would have received had the run been animated
// in real time, so clients can replay it at any speed. The CLI `trace`
// command and the HTTP `/api/trace` endpoint are both built on [Runner].
//
//	runner := trace.NewRunner(c, nil, logger)
//	tr, hit, err := runner.Execute(ctx, trace.Request{
//	    Engine:    trace.EngineSort,
//	    Algorithm: "bubble",
//	    Values:    []int{5, 3, 8, 1},
//	})
package trace

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/matzehuels/algoviz/pkg/cache"
	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
)

// Engine names an engine that can produce traces.
type Engine string

const (
	EngineSort   Engine = "sort"
	EngineSearch Engine = "search"
	EnginePath   Engine = "path"
	EngineTree   Engine = "tree"
)

// Engines lists every traceable engine.
func Engines() []Engine {
	return []Engine{EngineSort, EngineSearch, EnginePath, EngineTree}
}

// ParseEngine validates an engine name.
func ParseEngine(name string) (Engine, error) {
	e := Engine(name)
	if slices.Contains(Engines(), e) {
		return e, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown engine %q (want one of %v)", name, Engines())
}

// Request describes one run.
//
// Values is the sequence for sort and search and the insertion order for
// tree; an empty tree request uses the sample tree. Walls applies to path
// requests on the default grid.
type Request struct {
	Engine    Engine
	Algorithm string
	Values    []int
	Target    *int
	Walls     []render.Cell
	// Refresh bypasses the cache lookup; the fresh trace is still stored.
	Refresh bool
}

// Input is the part of a request that determines its trace.
func (r Request) Input() cache.TraceInput {
	in := cache.TraceInput{Values: r.Values, Target: r.Target}
	for _, w := range r.Walls {
		in.Walls = append(in.Walls, [2]int{w.Row, w.Col})
	}
	return in
}

// Validate checks that the request carries what its engine needs.
func (r Request) Validate() error {
	if _, err := ParseEngine(string(r.Engine)); err != nil {
		return err
	}
	switch r.Engine {
	case EngineSort:
		if len(r.Values) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "sort trace needs values")
		}
		return errors.ValidateArraySize(len(r.Values))
	case EngineSearch:
		if len(r.Values) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "search trace needs values")
		}
		if r.Target == nil {
			return errors.New(errors.ErrCodeInvalidInput, "Please enter a valid target value")
		}
	}
	return nil
}

// Result summarises the outcome of a run.
type Result struct {
	// Values is the final sequence of a sort run.
	Values []int `json:"values,omitempty"`
	// Index is the search result, -1 when absent.
	Index *int `json:"index,omitempty"`
	// State, Visited and Path describe a pathfinding run.
	State   string        `json:"state,omitempty"`
	Visited int           `json:"visited,omitempty"`
	Path    []render.Cell `json:"path,omitempty"`
	// Sequence is the visit order of a tree traversal.
	Sequence []int `json:"sequence,omitempty"`
}

// Trace is a complete recorded run.
type Trace struct {
	ID        string           `json:"id"`
	Engine    Engine           `json:"engine"`
	Algorithm string           `json:"algorithm"`
	Input     cache.TraceInput `json:"input"`
	Events    []render.Event   `json:"events"`
	Result    Result           `json:"result"`
	CreatedAt time.Time        `json:"created_at"`
}

// Replay sends every event of the trace to sink in order.
func (t *Trace) Replay(ctx context.Context, sink render.Sink) error {
	for _, ev := range t.Events {
		if err := sink.Emit(ctx, ev); err != nil {
			return fmt.Errorf("replay event: %w", err)
		}
	}
	return nil
}
