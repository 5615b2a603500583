package pathfind

import (
	"context"
	"io"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/render"
)

// validPath checks that path runs from start to end through open,
// orthogonally adjacent cells.
func validPath(t *testing.T, g *Grid, path []Point) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("empty path")
	}
	if path[0] != g.Start() || path[len(path)-1] != g.End() {
		t.Fatalf("path runs %v -> %v", path[0], path[len(path)-1])
	}
	for i, p := range path {
		if g.IsWall(p) {
			t.Errorf("path crosses wall at %v", p)
		}
		if i > 0 && manhattan(path[i-1], p) != 1 {
			t.Errorf("path jumps from %v to %v", path[i-1], p)
		}
	}
}

func TestEmptyGridAllAlgorithmsFindPath(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			g := NewGrid()
			res := Find(g, alg)
			if res.State != Found {
				t.Fatalf("state = %v, want found", res.State)
			}
			validPath(t, g, res.Path)
		})
	}
}

func TestBFSShortestOnEmptyGrid(t *testing.T) {
	res := Find(NewGrid(), BFS)
	// 20 moves between (5,5) and (15,15): 21 cells including both ends.
	if got := len(res.Path) - 1; got != 20 {
		t.Errorf("BFS path length = %d, want 20", got)
	}
	if slices.Contains(res.Visited, End) {
		t.Error("BFS must stop at discovery without marking the end visited")
	}
}

func TestShortestPathAgreement(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	for i := 0; i < 20; i++ {
		g := NewGrid()
		g.GenerateMaze(rng, DefaultMazeDensity)
		bfs := Find(g, BFS)
		for _, alg := range []Algorithm{DFS, Dijkstra, AStar} {
			res := Find(g, alg)
			if res.State != bfs.State {
				t.Fatalf("maze %d: %s state %v, bfs %v", i, alg, res.State, bfs.State)
			}
			if res.State != Found {
				continue
			}
			validPath(t, g, res.Path)
			if len(res.Path) < len(bfs.Path) {
				t.Errorf("maze %d: %s path shorter than bfs", i, alg)
			}
			if alg == Dijkstra && len(res.Path) != len(bfs.Path) {
				t.Errorf("maze %d: dijkstra path %d cells, bfs %d", i, len(res.Path), len(bfs.Path))
			}
		}
	}
}

func pts(rc ...[2]int) []Point {
	out := make([]Point, len(rc))
	for i, p := range rc {
		out[i] = Point{Row: p[0], Col: p[1]}
	}
	return out
}

func TestBFSStopsAtDiscovery(t *testing.T) {
	g := NewGridSize(3, Point{}, Point{Row: 0, Col: 2})
	res := Find(g, BFS)
	// (0,2) is discovered while expanding (0,1); the cells queued behind it
	// are never expanded.
	if want := pts([2]int{1, 0}, [2]int{0, 1}, [2]int{2, 0}, [2]int{1, 1}); !slices.Equal(res.Visited, want) {
		t.Errorf("visited = %v, want %v", res.Visited, want)
	}
	if want := pts([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}); !slices.Equal(res.Path, want) {
		t.Errorf("path = %v, want %v", res.Path, want)
	}
}

func TestAStarVisitsEachCellOnce(t *testing.T) {
	// The end is sealed off, so the search drains the open set. (1,4) and
	// (0,4) are reached first by a longer route and improved while queued;
	// they must not be pushed a second time.
	g := NewGridSize(5, Point{Row: 3, Col: 3}, Point{})
	for _, w := range pts([2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}, [2]int{2, 3}) {
		if err := g.SetWall(w, true); err != nil {
			t.Fatal(err)
		}
	}
	res := Find(g, AStar)
	if res.State != Exhausted {
		t.Fatalf("state = %v, want exhausted", res.State)
	}
	want := pts(
		[2]int{3, 2}, [2]int{2, 2}, [2]int{3, 1}, [2]int{1, 2}, [2]int{2, 1},
		[2]int{3, 0}, [2]int{0, 2}, [2]int{2, 0}, [2]int{4, 3}, [2]int{3, 4},
		[2]int{4, 2}, [2]int{4, 1}, [2]int{1, 3}, [2]int{4, 0}, [2]int{0, 3},
		[2]int{2, 4}, [2]int{4, 4}, [2]int{1, 4}, [2]int{0, 4},
	)
	if !slices.Equal(res.Visited, want) {
		t.Errorf("visited mismatch\n got: %v\nwant: %v", res.Visited, want)
	}
}

func TestExhausted(t *testing.T) {
	g := NewGrid()
	for _, n := range g.Neighbors(g.End()) {
		g.ToggleWall(n)
	}
	for _, alg := range Algorithms() {
		res := Find(g, alg)
		if res.State != Exhausted || res.Path != nil {
			t.Errorf("%s: state %v path %v, want exhausted", alg, res.State, res.Path)
		}
	}
}

func TestDFSFirstMoveIsUp(t *testing.T) {
	g := NewGrid()
	var first Step
	for s := range Steps(g, DFS) {
		first = s
		break
	}
	if want := (Point{Row: 4, Col: 5}); first.Point != want {
		t.Errorf("first DFS visit = %v, want %v", first.Point, want)
	}
}

func TestToggleWall(t *testing.T) {
	g := NewGrid()
	if g.ToggleWall(Start) || g.IsWall(Start) {
		t.Error("start must never become a wall")
	}
	if g.ToggleWall(End) || g.IsWall(End) {
		t.Error("end must never become a wall")
	}
	g.ToggleWall(Point{Row: -1, Col: 3})
	p := Point{Row: 0, Col: 0}
	if !g.ToggleWall(p) {
		t.Error("first toggle should place a wall")
	}
	if g.ToggleWall(p) {
		t.Error("second toggle should remove the wall")
	}
	if err := g.SetWall(Point{Row: 25, Col: 0}, true); err == nil {
		t.Error("SetWall off grid should fail")
	}
}

func TestGenerateMazeKeepsEndpointsOpen(t *testing.T) {
	g := NewGrid()
	g.GenerateMaze(rand.New(rand.NewPCG(1, 1)), 1.0)
	if g.IsWall(Start) || g.IsWall(End) {
		t.Error("endpoints walled")
	}
	if got := len(g.Walls()); got != Size*Size-2 {
		t.Errorf("walls = %d, want %d", got, Size*Size-2)
	}
	g.ClearWalls()
	if len(g.Walls()) != 0 {
		t.Error("ClearWalls left walls")
	}
}

func TestParseAlgorithm(t *testing.T) {
	for in, want := range map[string]Algorithm{"bfs": BFS, "A*": AStar, "Dijkstra": Dijkstra} {
		if got, err := ParseAlgorithm(in); err != nil || got != want {
			t.Errorf("ParseAlgorithm(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseAlgorithm("greedy"); err == nil {
		t.Error("expected error")
	}
}

func TestRunMarksBoard(t *testing.T) {
	g := NewGridSize(5, Point{Row: 0, Col: 0}, Point{Row: 0, Col: 4})
	board := render.NewBoard()
	res, err := Run(context.Background(), g, BFS, anim.NewPacer(anim.Instant, 0), board, DefaultTiming(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.State != Found {
		t.Fatalf("state = %v", res.State)
	}
	path := board.CellsIn(render.StatePath)
	want := []Point{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}}
	if !slices.Equal(path, want) {
		t.Errorf("path cells = %v, want %v", path, want)
	}
	for _, p := range res.Visited {
		if !g.Cell(p).Visited {
			t.Errorf("%v not flagged visited", p)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, NewGrid(), AStar, anim.NewPacer(anim.Instant, 0), render.Discard, DefaultTiming(), log.New(io.Discard))
	if err == nil {
		t.Error("expected cancellation error")
	}
}
