package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/algoviz/internal/server"
	"github.com/matzehuels/algoviz/pkg/cache"
	"github.com/matzehuels/algoviz/pkg/config"
	"github.com/matzehuels/algoviz/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the visualizer in the browser",
		Long: `Start the HTTP server. Every browser tab gets its own session with its
own engines; sessions idle for longer than server.session_ttl are dropped.

Prometheus metrics are served at /metrics.`,
		Example: `  algoviz serve
  algoviz serve --addr 127.0.0.1:9000 --no-cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			hooks := observability.NewPrometheusHooks(reg)
			observability.SetRunHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			printKeyValue("Address", "http://"+displayAddr(addr))
			printKeyValue("Sessions", c.Config.Server.SessionTTL.String()+" idle timeout")
			printKeyValue("Cache", cacheLabel(c.Config.Cache.Backend, noCache))

			srv := server.New(server.Options{
				Config:   c.Config,
				Logger:   c.Logger,
				Runner:   runner,
				Gatherer: reg,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr, "+config.DefaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not cache traces")

	return cmd
}

// displayAddr turns a listen address into something a browser can open.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func cacheLabel(backend string, disabled bool) string {
	switch {
	case disabled:
		return "disabled"
	case backend == "":
		return cache.BackendFile
	}
	return backend
}
