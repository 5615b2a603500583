package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/search"
	"github.com/matzehuels/algoviz/pkg/sorting"
	"github.com/matzehuels/algoviz/pkg/trace"
)

type traceOpts struct {
	engine    string
	algorithm string
	values    string
	target    string
	walls     string
	seed      uint64
	output    string
	noCache   bool
	refresh   bool
	lines     bool
}

func (c *CLI) traceCommand() *cobra.Command {
	var opts traceOpts

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the full event trace of a run as JSON",
		Long: `Compute every render event of one run without delays and print it as JSON.

Traces are cached by engine, algorithm and input, so repeating a request is
served from the cache. Sort and search runs without --values use a random
sequence drawn from --seed.`,
		Example: `  algoviz trace -e sort -a heap --values 5,3,8,1
  algoviz trace -e path -a astar --walls 4:5,5:4 -o trace.json
  algoviz trace -e tree -a levelorder --events`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.engine, "engine", "e", string(trace.EngineSort), "engine: sort, search, path or tree")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "algorithm or traversal order")
	cmd.Flags().StringVar(&opts.values, "values", "", "comma-separated input values")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "search target")
	cmd.Flags().StringVar(&opts.walls, "walls", "", "walls as row:col pairs")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "seed for generated values")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to `FILE` instead of stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the trace cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.lines, "events", false, "print only the events, one JSON object per line")
	_ = cmd.MarkFlagRequired("algorithm")
	return cmd
}

// buildRequest turns flags into a trace request, generating values for
// sort and search when none are given.
func (c *CLI) buildRequest(opts traceOpts) (trace.Request, error) {
	eng, err := trace.ParseEngine(opts.engine)
	if err != nil {
		return trace.Request{}, err
	}
	req := trace.Request{Engine: eng, Algorithm: opts.algorithm, Refresh: opts.refresh}

	if req.Values, err = parseValues(opts.values); err != nil {
		return req, err
	}
	if req.Walls, err = render.ParseCells(opts.walls); err != nil {
		return req, err
	}
	if eng == trace.EngineSearch {
		target, err := errors.ParseTarget(opts.target)
		if err != nil {
			return req, err
		}
		req.Target = &target
	}

	if len(req.Values) == 0 {
		rng := rand.New(rand.NewPCG(opts.seed, 0))
		switch eng {
		case trace.EngineSort:
			req.Values = sorting.Generate(rng, c.Config.Sort.ArraySize, c.Config.Sort.MinValue, c.Config.Sort.MaxValue)
		case trace.EngineSearch:
			req.Values = search.Generate(rng, c.Config.Search.Size, c.Config.Search.MaxValue, opts.algorithm == string(search.Binary))
		}
	}
	return req, nil
}

func (c *CLI) runTrace(ctx context.Context, opts traceOpts) error {
	logger := loggerFromContext(ctx)
	req, err := c.buildRequest(opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Tracing %s %s...", req.Engine, req.Algorithm))
	spinner.Start()
	tr, hit, err := runner.Execute(ctx, req)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("trace ready")

	var w io.Writer = c.out
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if opts.lines {
		if err := tr.Replay(ctx, render.NewJSONLines(w)); err != nil {
			return err
		}
	} else {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tr); err != nil {
			return err
		}
	}

	if opts.output != "" {
		printSuccess("Traced %s %s", req.Engine, tr.Algorithm)
		printTraceStats(len(tr.Events), hit)
		printFile(opts.output)
	}
	return nil
}
