package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/sorting"
)

type sortOpts struct {
	animateOpts
	algorithm string
	values    string
	size      int
	speed     int
}

func (c *CLI) sortCommand() *cobra.Command {
	opts := sortOpts{algorithm: string(sorting.Bubble)}

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Animate a sorting algorithm",
		Long: `Animate a sorting algorithm over a random or given sequence.

Algorithms: ` + joinNames(sorting.Algorithms()),
		Example: `  algoviz sort -a quick
  algoviz sort -a merge --values 5,3,8,1 --plain --instant`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSort(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", opts.algorithm, "sorting algorithm")
	cmd.Flags().StringVar(&opts.values, "values", "", "comma-separated values to sort instead of a random sequence")
	cmd.Flags().IntVar(&opts.size, "size", 0, "length of the random sequence (default from config)")
	cmd.Flags().IntVar(&opts.speed, "speed", 0, "animation speed, 1 (slow) to 10 (fast) (default from config delay)")
	opts.register(cmd)
	return cmd
}

func (c *CLI) runSort(ctx context.Context, opts sortOpts) error {
	logger := loggerFromContext(ctx)
	alg, err := sorting.ParseAlgorithm(opts.algorithm)
	if err != nil {
		return err
	}
	values, err := parseValues(opts.values)
	if err != nil {
		return err
	}

	s := c.newSession(opts.animateOpts)
	defer s.close()
	sorter := s.viz.Sort

	switch {
	case len(values) > 0:
		err = sorter.SetValues(ctx, values)
	case opts.size > 0:
		err = sorter.SetSize(ctx, opts.size)
	}
	if err != nil {
		return err
	}
	speed := opts.speed
	if speed != 0 {
		if err := sorter.SetSpeed(speed); err != nil {
			return err
		}
	} else {
		speed = speedForDelay(sorter.Delay())
	}
	logger.Debug("sorting", "algorithm", alg, "size", len(sorter.Values()), "delay", sorter.Delay())

	finished, err := s.run(ctx, play{
		title:    "Sorting · " + string(alg),
		start:    func(ctx context.Context) (<-chan error, error) { return sorter.Start(ctx, alg) },
		ctl:      sorter,
		view:     func() string { return viewArray(s.board, render.ScopeSort) },
		setSpeed: sorter.SetSpeed,
		speed:    speed,
	})
	if err != nil {
		return err
	}
	if !finished {
		return nil
	}
	printSuccess("Sorted %d values with %s", len(sorter.Values()), alg)
	return s.writeSVG(render.ScopeSort)
}

// speedForDelay inverts anim.DelayForSpeed, clamped to the valid range.
func speedForDelay(d time.Duration) int {
	for speed := errors.MaxSpeed; speed > errors.MinSpeed; speed-- {
		if anim.DelayForSpeed(speed) >= d {
			return speed
		}
	}
	return errors.MinSpeed
}

func joinNames[T ~string](names []T) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
