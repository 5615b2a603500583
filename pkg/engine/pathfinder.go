package engine

import (
	"context"
	"math/rand/v2"

	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/pathfind"
	"github.com/matzehuels/algoviz/pkg/render"
)

// Pathfinder animates the grid searches.
type Pathfinder struct {
	base
	rng     *rand.Rand
	density float64
	timing  pathfind.Timing
	grid    *pathfind.Grid
	state   pathfind.State
	last    pathfind.Result
}

func newPathfinder(opts Options) *Pathfinder {
	p := &Pathfinder{
		base:    newBase("grid", opts, 0),
		rng:     opts.rng(3),
		density: opts.MazeDensity,
		timing:  opts.PathTiming,
		grid:    pathfind.NewGrid(),
	}
	_ = p.emit(context.Background(), render.ResetGrid(nil))
	return p
}

// Grid returns a copy of the grid.
func (p *Pathfinder) Grid() *pathfind.Grid {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.grid.Clone()
}

// State returns the state of the current or last run.
func (p *Pathfinder) State() pathfind.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Result returns the outcome of the last completed run.
func (p *Pathfinder) Result() pathfind.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// ToggleWall flips the wall at (row, col) and reports whether it is now a
// wall. The start and end cells are never walled.
func (p *Pathfinder) ToggleWall(ctx context.Context, row, col int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := errors.ValidateCell(row, col, p.grid.Size()); err != nil {
		return false, err
	}
	if err := p.busyLocked(ctx); err != nil {
		return false, err
	}
	c := pathfind.Point{Row: row, Col: col}
	if c == p.grid.Start() || c == p.grid.End() {
		return false, nil
	}
	wall := p.grid.ToggleWall(c)
	if wall {
		return true, p.emit(ctx, render.MarkCells(render.StateWall, c))
	}
	return false, p.emit(ctx, render.ClearCells(c))
}

// SetWalls places walls at the given cells, leaving the rest untouched.
func (p *Pathfinder) SetWalls(ctx context.Context, cells []pathfind.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.busyLocked(ctx); err != nil {
		return err
	}
	for _, c := range cells {
		if err := p.grid.SetWall(c, true); err != nil {
			return err
		}
	}
	return p.resetLocked(ctx)
}

// ClearGrid removes every wall and mark.
func (p *Pathfinder) ClearGrid(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.busyLocked(ctx); err != nil {
		return err
	}
	p.grid.ClearWalls()
	return p.resetLocked(ctx)
}

// GenerateMaze clears the grid and scatters random walls.
func (p *Pathfinder) GenerateMaze(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.busyLocked(ctx); err != nil {
		return err
	}
	p.grid.GenerateMaze(p.rng, p.density)
	return p.resetLocked(ctx)
}

// ClearPath removes the visited and path marks of the last run.
func (p *Pathfinder) ClearPath(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.busyLocked(ctx); err != nil {
		return err
	}
	p.grid.ClearVisited()
	return p.resetLocked(ctx)
}

func (p *Pathfinder) resetLocked(ctx context.Context) error {
	p.state = pathfind.Idle
	p.last = pathfind.Result{}
	return p.emit(ctx, render.ResetGrid(p.grid.Walls()))
}

// Start begins a search in the background. The run explores a copy of the
// grid whose visited flags are kept when it completes.
func (p *Pathfinder) Start(ctx context.Context, alg pathfind.Algorithm) (<-chan error, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	work := p.grid.Clone()
	ch, err := p.launch(ctx, string(alg), len(work.Walls()), func(ctx context.Context) error {
		res, err := pathfind.Run(ctx, work, alg, p.pacer, p.sink, p.timing, p.logger)
		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.state = pathfind.Idle
			return err
		}
		p.grid, p.state, p.last = work, res.State, res
		return nil
	})
	if err == nil {
		p.state = pathfind.Running
	}
	return ch, err
}

// Run searches the grid and waits for the outcome.
func (p *Pathfinder) Run(ctx context.Context, alg pathfind.Algorithm) (pathfind.Result, error) {
	ch, err := p.Start(ctx, alg)
	if err != nil {
		return pathfind.Result{}, err
	}
	if err := wait(ctx, ch); err != nil {
		return pathfind.Result{}, err
	}
	return p.Result(), nil
}

// Reset cancels any active run and clears the marks, keeping walls.
func (p *Pathfinder) Reset(ctx context.Context) error {
	p.stop()
	return p.ClearPath(ctx)
}
