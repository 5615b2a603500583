// Package server serves the visualizer over HTTP.
//
// Every browser tab creates a session holding its own engines. Commands are
// posted as JSON and the resulting render events are streamed back with
// server-sent events; the embedded page draws them.
//
//	POST /api/sessions                          -> {"id": "..."}
//	GET  /api/sessions/{id}/events              (text/event-stream)
//	POST /api/sessions/{id}/sort/start          {"algorithm": "quick"}
//	POST /api/sessions/{id}/search/start        {"algorithm": "binary", "target": "42"}
//	POST /api/sessions/{id}/grid/wall           {"row": 3, "col": 4}
//	POST /api/sessions/{id}/tree/insert         {"value": "55"}
//	POST /api/sessions/{id}/stack/push          {"value": "7"}
//
// Errors are JSON objects carrying the error code and a user message. A
// command sent while the engine is animating is refused with 409.
package server

import (
	"context"
	"embed"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/config"
	"github.com/matzehuels/algoviz/pkg/engine"
	"github.com/matzehuels/algoviz/pkg/observability"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/session"
	"github.com/matzehuels/algoviz/pkg/trace"
)

//go:embed static
var static embed.FS

const (
	readTimeout     = 30 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

// Options configures a Server.
type Options struct {
	Config config.Config
	Logger *log.Logger
	// Runner serves /api/trace. Nil disables the route.
	Runner *trace.Runner
	// Gatherer serves /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer
	// Clock paces session runs; nil means real time.
	Clock anim.Clock
}

// Server is the HTTP front end.
type Server struct {
	cfg      config.Config
	logger   *log.Logger
	runner   *trace.Runner
	gatherer prometheus.Gatherer
	clock    anim.Clock
	sessions *session.Store
	// keepAlive is the comment interval on idle event streams.
	keepAlive time.Duration

	// runs outlive the request that started them and end with the server.
	runCtx    context.Context
	cancelRun context.CancelFunc

	router chi.Router
}

// New creates a server and its routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	runCtx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:       opts.Config,
		logger:    logger,
		runner:    opts.Runner,
		gatherer:  opts.Gatherer,
		clock:     opts.Clock,
		runCtx:    runCtx,
		cancelRun: cancel,
		keepAlive: keepAliveInterval,
	}
	s.sessions = session.NewStore(opts.Config.Server.SessionTTL.Duration, s.newVisualizer, logger)
	s.router = s.routes()
	return s
}

func (s *Server) newVisualizer(sink render.Sink) *engine.Visualizer {
	opts := s.cfg.EngineOptions(sink, s.logger)
	opts.Clock = s.clock
	return engine.New(opts)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", observability.Handler(s.gatherer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		if s.runner != nil {
			r.Get("/trace/{engine}/{algorithm}", s.handleTrace)
		}
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleSnapshot)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/events", s.handleEvents)
			r.Get("/tree.svg", s.handleTreeSVG)
			r.Post("/{target}/{action}", s.handleAction)
		})
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	go s.sessions.Run(ctx, sweepInterval)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close stops every run and ends every session. Open event streams finish.
func (s *Server) Close() {
	s.cancelRun()
	s.sessions.Close()
}
