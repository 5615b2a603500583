package engine

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/tree"
)

// TreeEngine maintains a binary search tree and animates its traversals.
type TreeEngine struct {
	base
	delay    time.Duration
	tree     *tree.Tree
	sequence []int
}

func newTreeEngine(opts Options) *TreeEngine {
	t := &TreeEngine{
		base:  newBase("tree", opts, 0),
		delay: opts.TreeDelay,
		tree:  tree.Sample(),
	}
	_ = t.renderLocked(context.Background())
	return t
}

// Insert parses raw as an integer and inserts it. Input that is not a
// number is ignored, as are duplicates; inserted reports whether the tree
// changed.
func (t *TreeEngine) Insert(ctx context.Context, raw string) (inserted bool, err error) {
	v, ok := errors.ParseValue(raw)
	if !ok {
		return false, nil
	}
	return t.InsertValue(ctx, v)
}

// InsertValue inserts v, ignoring duplicates.
func (t *TreeEngine) InsertValue(ctx context.Context, v int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.busyLocked(ctx); err != nil {
		return false, err
	}
	if !t.tree.Insert(v) {
		return false, nil
	}
	return true, t.renderLocked(ctx)
}

// Sample replaces the tree with the standard sample tree.
func (t *TreeEngine) Sample(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.busyLocked(ctx); err != nil {
		return err
	}
	t.tree = tree.Sample()
	return t.renderLocked(ctx)
}

// Clear empties the tree and the traversal text.
func (t *TreeEngine) Clear(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.busyLocked(ctx); err != nil {
		return err
	}
	t.tree.Clear()
	return t.renderLocked(ctx)
}

func (t *TreeEngine) renderLocked(ctx context.Context) error {
	t.sequence = nil
	return t.emit(ctx,
		render.Reset(render.ScopeTree, t.tree.Values(tree.PreOrder)),
		render.Output(render.ScopeTree, ""))
}

// Values returns the node values in the given order.
func (t *TreeEngine) Values(order tree.Order) []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tree.Values(order)
}

// Len returns the number of nodes.
func (t *TreeEngine) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tree.Len()
}

// Shape returns the laid-out nodes for drawing.
func (t *TreeEngine) Shape() []render.ShapeNode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tree.Shape(t.tree)
}

// DOT returns the tree in Graphviz DOT, coloured with the given states.
func (t *TreeEngine) DOT(states map[int]render.State) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tree.ToDOT(t.tree, tree.DOTOptions{States: states})
}

// Start begins a traversal in the background. Traversing an empty tree
// completes immediately without output. The tree is read, not copied:
// mutations are refused while the traversal runs.
func (t *TreeEngine) Start(ctx context.Context, order tree.Order) (<-chan error, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tr := t.tree
	return t.launch(ctx, string(order), tr.Len(), func(ctx context.Context) error {
		seq, err := tree.Run(ctx, tr, order, t.pacer, t.sink, t.delay, t.logger)
		if err == nil {
			t.mu.Lock()
			t.sequence = seq
			t.mu.Unlock()
		}
		return err
	})
}

// Traverse runs a traversal and returns the visited values.
func (t *TreeEngine) Traverse(ctx context.Context, order tree.Order) ([]int, error) {
	ch, err := t.Start(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := wait(ctx, ch); err != nil {
		return nil, err
	}
	return t.Sequence(), nil
}

// Sequence returns the values visited by the last completed traversal.
func (t *TreeEngine) Sequence() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.sequence)
}

// Reset cancels any active traversal and clears its highlights.
func (t *TreeEngine) Reset(ctx context.Context) error {
	t.stop()
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.renderLocked(ctx)
}
