package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/algoviz/pkg/engine"
	"github.com/matzehuels/algoviz/pkg/render"
)

// animateOpts are the flags shared by the animated commands.
type animateOpts struct {
	plain   bool   // print events as lines instead of the interactive player
	instant bool   // skip animation delays
	svg     string // write a final snapshot here
	seed    uint64 // overrides the configured seed
}

func (o *animateOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.plain, "plain", false, "print one line per step instead of the interactive player")
	cmd.Flags().BoolVar(&o.instant, "instant", false, "run without animation delays")
	cmd.Flags().StringVar(&o.svg, "svg", "", "write a final SVG snapshot to `FILE`")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "random seed (0 uses the configured seed)")
}

// session is one animated command: a board fed by a visualizer.
type session struct {
	opts  animateOpts
	board *render.Board
	viz   *engine.Visualizer
}

// newSession creates the board and the engines. In plain mode every event
// is also printed.
func (c *CLI) newSession(o animateOpts) *session {
	board := render.NewBoard()
	var sink render.Sink = board
	if o.plain {
		sink = render.Multi(board, render.NewText(c.out))
	}
	return &session{
		opts:  o,
		board: board,
		viz:   c.newVisualizer(sink, o.seed, o.instant),
	}
}

// play is one run to animate.
type play struct {
	title    string
	start    func(ctx context.Context) (<-chan error, error)
	ctl      runControl
	view     func() string
	setSpeed func(int) error
	speed    int
}

// run starts p and either waits for it (plain mode) or hands it to the
// interactive player. Quitting the player cancels the run; finished is
// false in that case and the caller prints no result.
func (s *session) run(ctx context.Context, p play) (finished bool, err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done, err := p.start(ctx)
	if err != nil {
		return false, err
	}

	if s.opts.plain {
		select {
		case err := <-done:
			return err == nil, err
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	model := newPlayerModel(p.title, p.view, done, p.ctl, p.setSpeed, p.speed)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return false, fmt.Errorf("player: %w", err)
	}
	finished, err = playerOutcome(final)
	if !finished && err == nil {
		printWarning("Stopped before the run finished")
	}
	return finished, err
}

// playerOutcome reports whether the player's run completed and with what
// error. A model that quit early did not finish.
func playerOutcome(final tea.Model) (bool, error) {
	m, ok := final.(playerModel)
	if !ok || !m.finished {
		return false, nil
	}
	return m.err == nil, m.err
}

// writeSVG writes a snapshot of scope when --svg was given.
func (s *session) writeSVG(scope render.Scope, opts ...render.SVGOption) error {
	if s.opts.svg == "" {
		return nil
	}
	if err := os.WriteFile(s.opts.svg, render.RenderSVG(s.board, scope, opts...), 0o644); err != nil {
		return err
	}
	printFile(s.opts.svg)
	return nil
}

func (s *session) close() {
	s.viz.Stop()
}
