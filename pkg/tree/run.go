package tree

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/render"
)

// DefaultVisitDelay is how long each visited node stays highlighted.
const DefaultVisitDelay = 800 * time.Millisecond

// SequenceSeparator joins visited values in output text.
const SequenceSeparator = " → "

// FormatSequence joins values with SequenceSeparator.
func FormatSequence(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, SequenceSeparator)
}

// Run animates a traversal of t and returns the visited values. Each node
// is highlighted as current for delay, appended to the running sequence,
// then marked visited. An empty tree produces no events.
func Run(ctx context.Context, t *Tree, order Order, pacer *anim.Pacer, sink render.Sink, delay time.Duration, logger *log.Logger) ([]int, error) {
	if logger == nil {
		logger = log.Default()
	}
	if t.Empty() {
		return nil, nil
	}
	if err := sink.Emit(ctx, render.Reset(render.ScopeTree, t.Values(PreOrder))); err != nil {
		return nil, err
	}
	if err := sink.Emit(ctx, render.Output(render.ScopeTree, "")); err != nil {
		return nil, err
	}

	logger.Debug("traversal started", "order", order, "nodes", t.Len())
	var seq []int
	for n := range Traverse(t.Root, order) {
		if err := visit(ctx, n.Value, &seq, pacer, sink, delay); err != nil {
			return seq, err
		}
	}
	logger.Debug("traversal finished", "order", order, "sequence", seq)
	return seq, sink.Emit(ctx, render.Output(render.ScopeTree, "Traversal sequence: "+FormatSequence(seq)))
}

func visit(ctx context.Context, v int, seq *[]int, pacer *anim.Pacer, sink render.Sink, delay time.Duration) error {
	if err := pacer.Checkpoint(ctx); err != nil {
		return err
	}
	if err := sink.Emit(ctx, render.HighlightNodes(render.StateCurrent, v)); err != nil {
		return err
	}
	if err := pacer.Sleep(ctx, delay); err != nil {
		return err
	}
	*seq = append(*seq, v)
	events := []render.Event{
		render.Output(render.ScopeTree, "Current sequence: "+FormatSequence(*seq)),
		render.ClearNodes(v),
		render.MarkNodes(render.StateVisited, v),
	}
	for _, ev := range events {
		if err := sink.Emit(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
