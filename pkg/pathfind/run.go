package pathfind

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/render"
)

// State is the lifecycle of a pathfinding run.
type State int

const (
	Idle State = iota
	Running
	Found
	Exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result summarises a completed search.
type Result struct {
	State   State
	Visited []Point
	// Path runs from start to end inclusive; empty unless State is Found.
	Path []Point
}

// Find runs alg to completion without animation.
func Find(g *Grid, alg Algorithm) Result {
	res := Result{State: Exhausted}
	var interior []Point
	for step := range Steps(g, alg) {
		res.collect(step, &interior)
	}
	res.finish(g, interior)
	return res
}

func (r *Result) collect(step Step, interior *[]Point) {
	switch step.Kind {
	case Visit:
		r.Visited = append(r.Visited, step.Point)
	case Reached:
		r.State = Found
	case Path:
		*interior = append(*interior, step.Point)
	}
}

func (r *Result) finish(g *Grid, interior []Point) {
	if r.State != Found {
		return
	}
	r.Path = append([]Point{g.start}, interior...)
	if g.end != g.start {
		r.Path = append(r.Path, g.end)
	}
}

// Timing holds the fixed delays of a pathfinding run.
type Timing struct {
	Visit time.Duration
	Path  time.Duration
}

// DefaultTiming returns the standard pathfinding delays.
func DefaultTiming() Timing {
	return Timing{Visit: 50 * time.Millisecond, Path: 100 * time.Millisecond}
}

// Run animates alg on g. Earlier visited and path marks are wiped first;
// walls are kept. Each visited cell is flagged on the grid, shown, and
// followed by timing.Visit; each interior path cell is shown and followed
// by timing.Path.
func Run(ctx context.Context, g *Grid, alg Algorithm, pacer *anim.Pacer, sink render.Sink, timing Timing, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	g.ClearVisited()
	if err := sink.Emit(ctx, render.ResetGrid(g.Walls())); err != nil {
		return Result{State: Idle}, err
	}

	start := time.Now()
	logger.Debug("pathfinding started", "algorithm", alg, "walls", len(g.Walls()))

	res := Result{State: Exhausted}
	var interior []Point
	for step := range Steps(g, alg) {
		if err := pacer.Checkpoint(ctx); err != nil {
			return Result{State: Running, Visited: res.Visited}, err
		}
		res.collect(step, &interior)

		var err error
		switch step.Kind {
		case Visit:
			g.markVisited(step.Point)
			if err = sink.Emit(ctx, render.MarkCells(render.StateVisited, step.Point)); err == nil {
				err = pacer.Sleep(ctx, timing.Visit)
			}
		case Path:
			if err = sink.Emit(ctx, render.MarkCells(render.StatePath, step.Point)); err == nil {
				err = pacer.Sleep(ctx, timing.Path)
			}
		}
		if err != nil {
			return Result{State: Running, Visited: res.Visited}, err
		}
	}
	res.finish(g, interior)

	logger.Debug("pathfinding finished", "algorithm", alg, "state", res.State,
		"visited", len(res.Visited), "path", len(res.Path), "duration", time.Since(start))
	return res, nil
}
