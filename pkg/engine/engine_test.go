package engine

import (
	"context"
	"io"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/observability"
	"github.com/matzehuels/algoviz/pkg/pathfind"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/search"
	"github.com/matzehuels/algoviz/pkg/sorting"
	"github.com/matzehuels/algoviz/pkg/tree"
)

func newTestVisualizer(t *testing.T, clock anim.Clock) (*Visualizer, *render.Board) {
	t.Helper()
	board := render.NewBoard()
	v := New(Options{
		Sink:   board,
		Clock:  clock,
		Logger: log.New(io.Discard),
		Seed:   42,
	})
	t.Cleanup(v.Stop)
	return v, board
}

// blockingClock parks every sleep until released or cancelled.
type blockingClock struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingClock() *blockingClock {
	return &blockingClock{entered: make(chan struct{}), release: make(chan struct{})}
}

func (c *blockingClock) Sleep(ctx context.Context, _ time.Duration) error {
	c.once.Do(func() { close(c.entered) })
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.release:
		return nil
	}
}

func TestNewRendersInitialState(t *testing.T) {
	_, board := newTestVisualizer(t, anim.Instant)
	if got := len(board.Values(render.ScopeSort)); got != sorting.DefaultSize {
		t.Errorf("sort size = %d, want %d", got, sorting.DefaultSize)
	}
	if got := len(board.Values(render.ScopeSearch)); got != search.DefaultSize {
		t.Errorf("search size = %d, want %d", got, search.DefaultSize)
	}
	if got := len(board.Nodes()); got != 11 {
		t.Errorf("tree nodes = %d, want 11", got)
	}
}

func TestSorterRun(t *testing.T) {
	v, board := newTestVisualizer(t, anim.Instant)
	ctx := context.Background()
	if err := v.Sort.SetValues(ctx, []int{5, 3, 8, 1}); err != nil {
		t.Fatal(err)
	}
	if err := v.Sort.Run(ctx, sorting.Heap); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := v.Sort.Values(); !slices.Equal(got, []int{1, 3, 5, 8}) {
		t.Errorf("Values = %v", got)
	}
	if got := board.Values(render.ScopeSort); !slices.Equal(got, []int{1, 3, 5, 8}) {
		t.Errorf("board = %v", got)
	}
}

func TestSorterValidation(t *testing.T) {
	v, _ := newTestVisualizer(t, anim.Instant)
	ctx := context.Background()
	if err := v.Sort.SetSize(ctx, 0); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("SetSize(0) = %v", err)
	}
	if err := v.Sort.SetSpeed(11); !errors.Is(err, errors.ErrCodeInvalidSpeed) {
		t.Errorf("SetSpeed(11) = %v", err)
	}
	if err := v.Sort.SetSpeed(10); err != nil || v.Sort.Delay() != 50*time.Millisecond {
		t.Errorf("SetSpeed(10): err %v delay %v", err, v.Sort.Delay())
	}
	if err := v.Sort.SetSize(ctx, 12); err != nil || len(v.Sort.Values()) != 12 {
		t.Errorf("SetSize(12): err %v len %d", err, len(v.Sort.Values()))
	}
}

func TestBusyRejectsSecondRunAndMutations(t *testing.T) {
	clock := newBlockingClock()
	v, _ := newTestVisualizer(t, clock)
	ctx := context.Background()

	rejected := &countingRunHooks{}
	observability.SetRunHooks(rejected)
	t.Cleanup(observability.Reset)

	done, err := v.Grid.Start(ctx, pathfind.BFS)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	<-clock.entered

	if v.Grid.State() != pathfind.Running {
		t.Errorf("state = %v, want running", v.Grid.State())
	}
	if _, err := v.Grid.Start(ctx, pathfind.DFS); !errors.Is(err, errors.ErrCodeBusy) {
		t.Errorf("second Start = %v, want BUSY", err)
	}
	if _, err := v.Grid.ToggleWall(ctx, 0, 0); !errors.Is(err, errors.ErrCodeBusy) {
		t.Errorf("ToggleWall during run = %v, want BUSY", err)
	}
	if err := v.Grid.GenerateMaze(ctx); !errors.Is(err, errors.ErrCodeBusy) {
		t.Errorf("GenerateMaze during run = %v, want BUSY", err)
	}
	// Other engines are independent.
	if _, err := v.Tree.InsertValue(ctx, 99); err != nil {
		t.Errorf("tree insert while grid runs: %v", err)
	}

	close(clock.release)
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
	if v.Grid.State() != pathfind.Found {
		t.Errorf("state = %v, want found", v.Grid.State())
	}
	if rejected.rejected() != 3 {
		t.Errorf("rejections = %d, want 3", rejected.rejected())
	}
}

func TestResetCancelsRun(t *testing.T) {
	clock := newBlockingClock()
	v, board := newTestVisualizer(t, clock)
	ctx := context.Background()

	before := v.Sort.Values()
	done, err := v.Sort.Start(ctx, sorting.Bubble)
	if err != nil {
		t.Fatal(err)
	}
	<-clock.entered
	if err := v.Sort.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := <-done; err == nil {
		t.Error("cancelled run reported success")
	}
	if v.Sort.Running() {
		t.Error("still running after Reset")
	}
	after := v.Sort.Values()
	if slices.Equal(before, after) {
		t.Error("Reset should regenerate the sequence")
	}
	if !slices.Equal(board.Values(render.ScopeSort), after) {
		t.Error("board not re-rendered after Reset")
	}
}

func TestPauseHoldsRun(t *testing.T) {
	v, _ := newTestVisualizer(t, anim.Instant)
	ctx := context.Background()
	if err := v.Sort.SetValues(ctx, []int{3, 2, 1}); err != nil {
		t.Fatal(err)
	}
	v.Sort.TogglePause()
	if !v.Sort.Paused() {
		t.Fatal("not paused")
	}
	// Start clears a stale pause, like pressing start in the UI.
	if err := v.Sort.Run(ctx, sorting.Insertion); err != nil {
		t.Fatal(err)
	}
	if v.Sort.Paused() {
		t.Error("Start should clear the pause")
	}
}

func TestSearcher(t *testing.T) {
	v, board := newTestVisualizer(t, anim.Instant)
	ctx := context.Background()

	if _, err := v.Search.Run(ctx, "abc", search.Linear); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("non-numeric target = %v", err)
	}
	if err := v.Search.SetValues(ctx, []int{9, 4, 7}); err != nil {
		t.Fatal(err)
	}
	idx, err := v.Search.Run(ctx, "7", search.Binary)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("index = %d, want 1", idx)
	}
	if !slices.Equal(v.Search.Values(), []int{4, 7, 9}) {
		t.Errorf("binary search should leave values sorted: %v", v.Search.Values())
	}
	if board.Message(render.ScopeSearch) != "Found 7 at index 1" {
		t.Errorf("message = %q", board.Message(render.ScopeSearch))
	}
	if err := v.Search.Reset(ctx); err != nil || board.Message(render.ScopeSearch) != "" {
		t.Errorf("Reset: %v, message %q", err, board.Message(render.ScopeSearch))
	}
	if err := v.Search.Generate(ctx, search.Binary); err != nil || !slices.IsSorted(v.Search.Values()) {
		t.Errorf("Generate(binary) should produce sorted values")
	}
}

func TestPathfinder(t *testing.T) {
	v, board := newTestVisualizer(t, anim.Instant)
	ctx := context.Background()

	wall, err := v.Grid.ToggleWall(ctx, 0, 0)
	if err != nil || !wall {
		t.Fatalf("ToggleWall = %v, %v", wall, err)
	}
	if board.CellState(pathfind.Point{}) != render.StateWall {
		t.Error("wall not rendered")
	}
	if wall, _ := v.Grid.ToggleWall(ctx, 5, 5); wall {
		t.Error("start became a wall")
	}
	if _, err := v.Grid.ToggleWall(ctx, 30, 0); !errors.Is(err, errors.ErrCodeInvalidCell) {
		t.Errorf("off-grid toggle = %v", err)
	}

	res, err := v.Grid.Run(ctx, pathfind.AStar)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != pathfind.Found || len(res.Path) != 21 {
		t.Errorf("A* result: %v, %d cells", res.State, len(res.Path))
	}
	if got := len(board.CellsIn(render.StatePath)); got != 19 {
		t.Errorf("path cells = %d, want 19", got)
	}
	if err := v.Grid.ClearPath(ctx); err != nil {
		t.Fatal(err)
	}
	if len(board.CellsIn(render.StatePath)) != 0 || v.Grid.State() != pathfind.Idle {
		t.Error("ClearPath left marks")
	}
	if board.CellState(pathfind.Point{}) != render.StateWall {
		t.Error("ClearPath removed a wall")
	}
}

func TestTreeEngine(t *testing.T) {
	v, board := newTestVisualizer(t, anim.Instant)
	ctx := context.Background()

	if ok, err := v.Tree.Insert(ctx, "x"); ok || err != nil {
		t.Errorf("Insert(x) = %v, %v", ok, err)
	}
	if ok, _ := v.Tree.Insert(ctx, "50"); ok {
		t.Error("duplicate inserted")
	}
	if ok, _ := v.Tree.Insert(ctx, "55abc"); !ok {
		t.Error("leading integer should be accepted")
	}
	seq, err := v.Tree.Traverse(ctx, tree.InOrder)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.IsSorted(seq) || len(seq) != 12 {
		t.Errorf("inorder = %v", seq)
	}
	if err := v.Tree.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if seq, err := v.Tree.Traverse(ctx, tree.PreOrder); err != nil || len(seq) != 0 {
		t.Errorf("empty traversal = %v, %v", seq, err)
	}
	if len(board.Nodes()) != 0 {
		t.Error("board still shows nodes")
	}
}

func TestStructures(t *testing.T) {
	v, board := newTestVisualizer(t, anim.Instant)
	ctx := context.Background()
	s := v.Structures

	for _, x := range []int{1, 2, 3} {
		_ = s.Push(ctx, x)
		_ = s.Enqueue(ctx, x)
		_ = s.Insert(ctx, x)
	}
	if top, ok, _ := s.Pop(ctx); !ok || top != 3 {
		t.Errorf("Pop = %d, %v", top, ok)
	}
	if front, ok, _ := s.Dequeue(ctx); !ok || front != 1 {
		t.Errorf("Dequeue = %d, %v", front, ok)
	}
	if ok, _ := s.Delete(ctx, 2); !ok {
		t.Error("Delete(2) failed")
	}
	if !slices.Equal(board.Items(render.ScopeStack), []int{1, 2}) ||
		!slices.Equal(board.Items(render.ScopeQueue), []int{2, 3}) ||
		!slices.Equal(board.Items(render.ScopeList), []int{1, 3}) {
		t.Errorf("board items: %v %v %v", board.Items(render.ScopeStack), board.Items(render.ScopeQueue), board.Items(render.ScopeList))
	}
	_ = s.ClearStack(ctx)
	if _, ok, err := s.Pop(ctx); ok || err != nil {
		t.Error("Pop on empty stack should be a no-op")
	}
}

func TestCatalog(t *testing.T) {
	if got := len(Catalog(CategorySorting)); got != len(sorting.Algorithms()) {
		t.Errorf("sorting entries = %d", got)
	}
	for _, a := range pathfind.Algorithms() {
		if _, ok := Lookup(CategoryGraph, string(a)); !ok {
			t.Errorf("missing graph entry %s", a)
		}
	}
	info, ok := Lookup(CategoryTree, "levelorder")
	if !ok || info.Space != "O(w)" {
		t.Errorf("levelorder = %+v", info)
	}
}

type countingRunHooks struct {
	observability.NoopRunHooks
	mu sync.Mutex
	n  int
}

func (h *countingRunHooks) OnRunRejected(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.n++
}

func (h *countingRunHooks) rejected() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.n
}
