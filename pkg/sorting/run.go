package sorting

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/render"
)

// Run animates alg over values, which are sorted in place.
//
// Compare and Swap steps are shown and followed by one step delay; Commit
// steps publish the freshly written values; Checkpoint steps stall while
// the pacer is paused. However the run ends, short of cancellation, every
// index is finally marked sorted. A panic inside the algorithm is logged
// and treated the same way.
func Run(ctx context.Context, values []int, alg Algorithm, pacer *anim.Pacer, sink render.Sink, logger *log.Logger) (err error) {
	if logger == nil {
		logger = log.Default()
	}
	start := time.Now()
	steps := 0

	defer func() {
		if r := recover(); r != nil {
			logger.Error("sorting failed", "algorithm", alg, "panic", r)
			err = nil
		}
		if ctx.Err() != nil {
			err = ctx.Err()
			return
		}
		if markErr := sink.Emit(ctx, render.Mark(render.ScopeSort, render.StateSorted, allIndices(len(values))...)); markErr != nil && err == nil {
			err = markErr
		}
		logger.Debug("sort finished", "algorithm", alg, "steps", steps, "duration", time.Since(start))
	}()

	logger.Debug("sort started", "algorithm", alg, "size", len(values))
	for step := range Steps(values, alg) {
		steps++
		if err := apply(ctx, step, values, pacer, sink); err != nil {
			return err
		}
	}
	return nil
}

func apply(ctx context.Context, step Step, values []int, pacer *anim.Pacer, sink render.Sink) error {
	switch step.Kind {
	case Checkpoint:
		return pacer.Checkpoint(ctx)
	case Compare:
		if err := sink.Emit(ctx, render.Highlight(render.ScopeSort, render.StateComparing, step.Indices...)); err != nil {
			return err
		}
		return pacer.Step(ctx)
	case Swap:
		if err := sink.Emit(ctx, render.Highlight(render.ScopeSort, render.StateSwapping, step.Indices...)); err != nil {
			return err
		}
		return pacer.Step(ctx)
	case Commit:
		written := make([]int, len(step.Indices))
		for i, idx := range step.Indices {
			written[i] = values[idx]
		}
		return sink.Emit(ctx, render.Update(render.ScopeSort, step.Indices, written))
	case Clear:
		return sink.Emit(ctx, render.Clear(render.ScopeSort, step.Indices...))
	case Sorted:
		return sink.Emit(ctx, render.Mark(render.ScopeSort, render.StateSorted, step.Indices...))
	}
	return fmt.Errorf("unknown step kind %v", step.Kind)
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
