package pathfind

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/matzehuels/algoviz/pkg/errors"
)

// Algorithm names a pathfinding algorithm.
type Algorithm string

const (
	BFS      Algorithm = "bfs"
	DFS      Algorithm = "dfs"
	Dijkstra Algorithm = "dijkstra"
	AStar    Algorithm = "astar"
)

// Algorithms returns every supported algorithm in menu order.
func Algorithms() []Algorithm {
	return []Algorithm{BFS, DFS, Dijkstra, AStar}
}

// ParseAlgorithm resolves a user-supplied algorithm name. "a*" is accepted
// as an alias for astar.
func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if a == "a*" {
		return AStar, nil
	}
	if slices.Contains(Algorithms(), a) {
		return a, nil
	}
	return "", errors.New(errors.ErrCodeInvalidAlgorithm, "unknown pathfinding algorithm %q", name)
}

// StepKind classifies a pathfinding step.
type StepKind int

const (
	// Visit marks a cell explored by the algorithm.
	Visit StepKind = iota
	// Reached reports that the end cell was found. It precedes the Path steps.
	Reached
	// Path marks one interior cell of the reconstructed path, start side first.
	Path
)

func (k StepKind) String() string {
	switch k {
	case Visit:
		return "visit"
	case Reached:
		return "reached"
	case Path:
		return "path"
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

// Step is one observable unit of a pathfinding run.
type Step struct {
	Kind  StepKind
	Point Point
}

// Steps yields the exploration of g by alg followed, if the end is reached,
// by the interior cells of the path. The grid is only read.
func Steps(g *Grid, alg Algorithm) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		s := &searcher{g: g, yield: yield, parent: make(map[Point]Point)}
		var reached bool
		switch alg {
		case BFS:
			reached = s.bfs()
		case DFS:
			reached = s.dfs()
		case Dijkstra:
			reached = s.dijkstra()
		case AStar:
			reached = s.astar()
		}
		if !reached || s.stopped || !s.emit(Reached, g.end) {
			return
		}
		path := s.path()
		if len(path) < 2 {
			return
		}
		for _, p := range path[1 : len(path)-1] {
			if !s.emit(Path, p) {
				return
			}
		}
	}
}

type searcher struct {
	g       *Grid
	yield   func(Step) bool
	stopped bool
	parent  map[Point]Point
}

func (s *searcher) emit(kind StepKind, p Point) bool {
	if s.stopped {
		return false
	}
	if !s.yield(Step{Kind: kind, Point: p}) {
		s.stopped = true
	}
	return !s.stopped
}

// open reports whether p can be entered.
func (s *searcher) open(p Point) bool {
	return !s.g.IsWall(p)
}

// path walks parent links back from the end cell. The result runs from
// start to end inclusive.
func (s *searcher) path() []Point {
	path := []Point{s.g.end}
	for cur := s.g.end; cur != s.g.start; {
		prev, ok := s.parent[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	slices.Reverse(path)
	return path
}

// bfs stops as soon as the end cell is discovered. Every other discovered
// cell is shown as visited at discovery time.
func (s *searcher) bfs() bool {
	g := s.g
	if g.start == g.end {
		return true
	}
	queue := []Point{g.start}
	seen := map[Point]bool{g.start: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(cur) {
			if seen[n] || !s.open(n) {
				continue
			}
			seen[n] = true
			s.parent[n] = cur
			if n == g.end {
				return true
			}
			queue = append(queue, n)
			if !s.emit(Visit, n) {
				return false
			}
		}
	}
	return false
}

// dfs checks visited lazily at pop time, so a cell may sit on the stack
// more than once; the parent recorded by the latest push wins.
func (s *searcher) dfs() bool {
	g := s.g
	stack := []Point{g.start}
	visited := make(map[Point]bool)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if cur == g.end {
			return true
		}
		if cur != g.start && !s.emit(Visit, cur) {
			return false
		}
		neighbors := g.Neighbors(cur)
		slices.Reverse(neighbors)
		for _, n := range neighbors {
			if !visited[n] && s.open(n) {
				s.parent[n] = cur
				stack = append(stack, n)
			}
		}
	}
	return false
}

type frontierEntry struct {
	p        Point
	priority int
}

// dijkstra keeps an unordered frontier that is stably re-sorted by distance
// before every pop. Stale entries are skipped when popped.
func (s *searcher) dijkstra() bool {
	g := s.g
	dist := map[Point]int{g.start: 0}
	visited := make(map[Point]bool)
	frontier := []frontierEntry{{g.start, 0}}
	for len(frontier) > 0 {
		slices.SortStableFunc(frontier, byPriority)
		cur := frontier[0].p
		frontier = frontier[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if cur == g.end {
			return true
		}
		if cur != g.start && !s.emit(Visit, cur) {
			return false
		}
		for _, n := range g.Neighbors(cur) {
			if visited[n] || !s.open(n) {
				continue
			}
			d := dist[cur] + 1
			if old, ok := dist[n]; !ok || d < old {
				dist[n] = d
				s.parent[n] = cur
				frontier = append(frontier, frontierEntry{n, d})
			}
		}
	}
	return false
}

// astar orders the open set by f = g + Manhattan distance. An entry keeps
// the f it was pushed with; a cell already in the open set is not pushed
// again even when its g improves.
func (s *searcher) astar() bool {
	g := s.g
	gScore := map[Point]int{g.start: 0}
	closed := make(map[Point]bool)
	open := []frontierEntry{{g.start, manhattan(g.start, g.end)}}
	for len(open) > 0 {
		slices.SortStableFunc(open, byPriority)
		cur := open[0].p
		open = open[1:]
		if cur == g.end {
			return true
		}
		closed[cur] = true
		if cur != g.start && !s.emit(Visit, cur) {
			return false
		}
		for _, n := range g.Neighbors(cur) {
			if closed[n] || !s.open(n) {
				continue
			}
			tentative := gScore[cur] + 1
			if old, ok := gScore[n]; ok && tentative >= old {
				continue
			}
			s.parent[n] = cur
			gScore[n] = tentative
			inOpen := slices.ContainsFunc(open, func(e frontierEntry) bool { return e.p == n })
			if !inOpen {
				open = append(open, frontierEntry{n, tentative + manhattan(n, g.end)})
			}
		}
	}
	return false
}

func byPriority(a, b frontierEntry) int {
	return a.priority - b.priority
}

func manhattan(a, b Point) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
