package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/tree"
)

type treeOpts struct {
	animateOpts
	order    string
	values   string
	graphviz string
}

func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{order: string(tree.InOrder)}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Animate a binary search tree traversal",
		Long: `Animate a traversal of the sample binary search tree, or of a tree built
by inserting --values in order. Duplicate values are ignored.

Orders: ` + joinNames(tree.Orders()),
		Example: `  algoviz tree -o levelorder
  algoviz tree -o postorder --values 8,3,10,1,6 --graphviz tree.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.order, "order", "o", opts.order, "traversal order")
	cmd.Flags().StringVar(&opts.values, "values", "", "comma-separated values to insert instead of the sample tree")
	cmd.Flags().StringVar(&opts.graphviz, "graphviz", "", "also render the final tree with Graphviz to `FILE`")
	opts.register(cmd)
	return cmd
}

func (c *CLI) runTree(ctx context.Context, opts treeOpts) error {
	order, err := tree.ParseOrder(opts.order)
	if err != nil {
		return err
	}
	values, err := parseValues(opts.values)
	if err != nil {
		return err
	}

	s := c.newSession(opts.animateOpts)
	defer s.close()
	te := s.viz.Tree

	if len(values) > 0 {
		if err := te.Clear(ctx); err != nil {
			return err
		}
		for _, v := range values {
			if _, err := te.InsertValue(ctx, v); err != nil {
				return err
			}
		}
	}

	shape := te.Shape()
	finished, err := s.run(ctx, play{
		title: "Tree traversal · " + string(order),
		start: func(ctx context.Context) (<-chan error, error) { return te.Start(ctx, order) },
		ctl:   te,
		view:  func() string { return viewTree(s.board, shape) },
	})
	if err != nil {
		return err
	}
	if !finished {
		return nil
	}

	printSuccess("%s: %s", order, tree.FormatSequence(te.Sequence()))
	if err := s.writeSVG(render.ScopeTree, render.WithTreeShape(shape)); err != nil {
		return err
	}
	if opts.graphviz == "" {
		return nil
	}
	return c.writeGraphviz(ctx, te.DOT(s.board.NodeStates()), opts.graphviz)
}

func (c *CLI) writeGraphviz(ctx context.Context, dot, path string) error {
	spinner := newSpinnerWithContext(ctx, "Rendering with Graphviz...")
	spinner.Start()
	svg, err := tree.RenderSVG(ctx, dot)
	if err != nil {
		spinner.StopWithError("Graphviz rendering failed")
		return err
	}
	spinner.Stop()
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
