// Package pathfind runs animated BFS, DFS, Dijkstra and A* searches over a
// square grid with user-placed walls.
//
// Every move costs one and cells connect to their four orthogonal
// neighbours, visited in the order up, down, left, right. The four
// algorithms differ only in their frontier discipline.
package pathfind

import (
	"math/rand/v2"

	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
)

// Point addresses a grid cell.
type Point = render.Cell

// Fixed grid geometry.
const (
	Size = 25
	// DefaultMazeDensity is the probability that GenerateMaze walls a cell.
	DefaultMazeDensity = 0.3
)

var (
	Start = Point{Row: 5, Col: 5}
	End   = Point{Row: 15, Col: 15}
)

// Cell is the state of one grid square. Visited only records what was last
// displayed; the algorithms keep their own visited sets.
type Cell struct {
	Wall    bool
	Visited bool
}

// Grid is a square cell matrix with fixed start and end cells.
type Grid struct {
	size       int
	start, end Point
	cells      [][]Cell
}

// NewGrid returns an empty Size×Size grid with the standard endpoints.
func NewGrid() *Grid {
	return NewGridSize(Size, Start, End)
}

// NewGridSize returns an empty grid of the given dimension and endpoints.
func NewGridSize(size int, start, end Point) *Grid {
	g := &Grid{size: size, start: start, end: end, cells: make([][]Cell, size)}
	for r := range g.cells {
		g.cells[r] = make([]Cell, size)
	}
	return g
}

// Size returns the grid dimension.
func (g *Grid) Size() int { return g.size }

// Start returns the start cell.
func (g *Grid) Start() Point { return g.start }

// End returns the end cell.
func (g *Grid) End() Point { return g.end }

// In reports whether p lies on the grid.
func (g *Grid) In(p Point) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

// Cell returns the state of p. Off-grid points read as walls.
func (g *Grid) Cell(p Point) Cell {
	if !g.In(p) {
		return Cell{Wall: true}
	}
	return g.cells[p.Row][p.Col]
}

// IsWall reports whether p is blocked.
func (g *Grid) IsWall(p Point) bool {
	return g.Cell(p).Wall
}

// ToggleWall flips the wall state of p and reports the new state.
// Toggling the start or end cell, or a point off the grid, does nothing.
func (g *Grid) ToggleWall(p Point) bool {
	if !g.In(p) || p == g.start || p == g.end {
		return false
	}
	c := &g.cells[p.Row][p.Col]
	c.Wall = !c.Wall
	return c.Wall
}

// SetWall places or removes a wall, rejecting off-grid points. Start and
// end are silently left open.
func (g *Grid) SetWall(p Point, wall bool) error {
	if err := errors.ValidateCell(p.Row, p.Col, g.size); err != nil {
		return err
	}
	if p == g.start || p == g.end {
		return nil
	}
	g.cells[p.Row][p.Col].Wall = wall
	return nil
}

// ClearWalls removes every wall and visited flag.
func (g *Grid) ClearWalls() {
	for r := range g.cells {
		clear(g.cells[r])
	}
}

// ClearVisited resets every visited flag, keeping walls.
func (g *Grid) ClearVisited() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c].Visited = false
		}
	}
}

// Walls returns the walled cells in row-major order.
func (g *Grid) Walls() []Point {
	var out []Point
	for r := range g.cells {
		for c, cell := range g.cells[r] {
			if cell.Wall {
				out = append(out, Point{Row: r, Col: c})
			}
		}
	}
	return out
}

// GenerateMaze clears the grid and walls each cell other than the
// endpoints with the given probability.
func (g *Grid) GenerateMaze(rng *rand.Rand, density float64) {
	g.ClearWalls()
	for r := range g.cells {
		for c := range g.cells[r] {
			p := Point{Row: r, Col: c}
			if rng.Float64() < density && p != g.start && p != g.end {
				g.cells[r][c].Wall = true
			}
		}
	}
}

var directions = [4]Point{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}

// Neighbors returns the on-grid orthogonal neighbours of p in the order
// up, down, left, right. Walls are included.
func (g *Grid) Neighbors(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, d := range directions {
		n := Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if g.In(n) {
			out = append(out, n)
		}
	}
	return out
}

func (g *Grid) markVisited(p Point) {
	if g.In(p) {
		g.cells[p.Row][p.Col].Visited = true
	}
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{size: g.size, start: g.start, end: g.end, cells: make([][]Cell, g.size)}
	for r := range g.cells {
		c.cells[r] = append([]Cell(nil), g.cells[r]...)
	}
	return c
}
