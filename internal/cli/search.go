package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/search"
)

type searchOpts struct {
	animateOpts
	algorithm string
	target    string
	values    string
}

func (c *CLI) searchCommand() *cobra.Command {
	opts := searchOpts{algorithm: string(search.Linear)}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Animate a linear or binary search",
		Long: `Animate a search for --target in a random or given sequence.

Binary search sorts the sequence first and shows the sorted order before
probing. Algorithms: ` + joinNames(search.Algorithms()),
		Example: `  algoviz search --target 42
  algoviz search -a binary --values 9,2,7,4 --target 7 --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", opts.algorithm, "search algorithm")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "value to search for")
	cmd.Flags().StringVar(&opts.values, "values", "", "comma-separated values instead of a random sequence")
	opts.register(cmd)
	return cmd
}

func (c *CLI) runSearch(ctx context.Context, opts searchOpts) error {
	alg, err := search.ParseAlgorithm(opts.algorithm)
	if err != nil {
		return err
	}
	// Rejected before anything is drawn.
	if _, err := errors.ParseTarget(opts.target); err != nil {
		return err
	}
	values, err := parseValues(opts.values)
	if err != nil {
		return err
	}

	s := c.newSession(opts.animateOpts)
	defer s.close()
	searcher := s.viz.Search

	if len(values) > 0 {
		err = searcher.SetValues(ctx, values)
	} else {
		err = searcher.Generate(ctx, alg)
	}
	if err != nil {
		return err
	}

	finished, err := s.run(ctx, play{
		title: "Search · " + string(alg) + " for " + opts.target,
		start: func(ctx context.Context) (<-chan error, error) { return searcher.Start(ctx, opts.target, alg) },
		ctl:   searcher,
		view:  func() string { return viewArray(s.board, render.ScopeSearch) },
	})
	if err != nil {
		return err
	}
	if !finished {
		return nil
	}
	if searcher.Result() == search.NotFound {
		printWarning("%s", s.board.Message(render.ScopeSearch))
	} else {
		printSuccess("%s", s.board.Message(render.ScopeSearch))
	}
	return s.writeSVG(render.ScopeSearch)
}
