package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/buildinfo"
	"github.com/matzehuels/algoviz/pkg/cache"
	"github.com/matzehuels/algoviz/pkg/config"
	"github.com/matzehuels/algoviz/pkg/engine"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/trace"
)

const appName = "algoviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	out        io.Writer
}

// New creates a CLI that logs to w at the given level and prints results
// to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "algoviz animates classic algorithms step by step",
		Long: `algoviz animates sorting, searching, grid pathfinding and binary tree
traversals one step at a time, in the terminal or in a browser.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a TOML config file")

	root.AddCommand(c.sortCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.dsCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	return nil
}

// newVisualizer creates the engines for one command. A non-zero seed
// overrides the configured one; instant disables animation delays.
func (c *CLI) newVisualizer(sink render.Sink, seed uint64, instant bool) *engine.Visualizer {
	opts := c.Config.EngineOptions(sink, c.Logger)
	if seed != 0 {
		opts.Seed = seed
	}
	if instant {
		opts.Clock = anim.Instant
	}
	return engine.New(opts)
}

// newRunner creates a trace runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*trace.Runner, error) {
	var (
		store cache.Cache
		err   error
	)
	if noCache {
		store = cache.NewNullCache()
	} else if store, err = cache.Open(ctx, c.Config.CacheOptions()); err != nil {
		return nil, err
	}
	r := trace.NewRunner(store, cache.NewScopedKeyer(nil, c.Config.Cache.Prefix), c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}
