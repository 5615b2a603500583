package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/algoviz/pkg/pathfind"
	"github.com/matzehuels/algoviz/pkg/render"
)

type pathOpts struct {
	animateOpts
	algorithm string
	walls     string
	maze      bool
}

func (c *CLI) pathCommand() *cobra.Command {
	opts := pathOpts{algorithm: string(pathfind.BFS)}

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Animate a grid pathfinding algorithm",
		Long: fmt.Sprintf(`Animate a path search on a %[1]dx%[1]d grid from %[2]s to %[3]s.

Algorithms: %[4]s`, pathfind.Size, pathfind.Start, pathfind.End, joinNames(pathfind.Algorithms())),
		Example: `  algoviz path -a astar --maze
  algoviz path -a dijkstra --walls 4:5,5:4,6:5 --plain --instant`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPath(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", opts.algorithm, "pathfinding algorithm")
	cmd.Flags().StringVar(&opts.walls, "walls", "", "walls as row:col pairs, e.g. 4:5,6:7")
	cmd.Flags().BoolVar(&opts.maze, "maze", false, "generate a random maze first")
	opts.register(cmd)
	return cmd
}

func (c *CLI) runPath(ctx context.Context, opts pathOpts) error {
	alg, err := pathfind.ParseAlgorithm(opts.algorithm)
	if err != nil {
		return err
	}
	walls, err := render.ParseCells(opts.walls)
	if err != nil {
		return err
	}

	s := c.newSession(opts.animateOpts)
	defer s.close()
	finder := s.viz.Grid

	if opts.maze {
		if err := finder.GenerateMaze(ctx); err != nil {
			return err
		}
	}
	if len(walls) > 0 {
		if err := finder.SetWalls(ctx, walls); err != nil {
			return err
		}
	}

	g := finder.Grid()
	finished, err := s.run(ctx, play{
		title: "Pathfinding · " + string(alg),
		start: func(ctx context.Context) (<-chan error, error) { return finder.Start(ctx, alg) },
		ctl:   finder,
		view:  func() string { return viewGrid(s.board, g.Size(), g.Start(), g.End()) },
	})
	if err != nil {
		return err
	}
	if !finished {
		return nil
	}

	res := finder.Result()
	if res.State == pathfind.Found {
		printSuccess("Path found: %d steps, %d cells visited", len(res.Path)-1, len(res.Visited))
	} else {
		printWarning("No path: %d cells visited", len(res.Visited))
	}
	return s.writeSVG(render.ScopeGrid, render.WithGrid(g.Size(), g.Start(), g.End()))
}
