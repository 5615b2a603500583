package observability

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusHooks implements RunHooks, CacheHooks and HTTPHooks with
// Prometheus collectors.
type PrometheusHooks struct {
	runsStarted  *prometheus.CounterVec
	runsFinished *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	runsRejected *prometheus.CounterVec
	cacheOps     *prometheus.CounterVec
	cacheBytes   *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		runsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "algoviz", Name: "runs_started_total",
			Help: "Animated runs started, by engine and algorithm.",
		}, []string{"engine", "algorithm"}),
		runsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "algoviz", Name: "runs_finished_total",
			Help: "Animated runs finished, by engine, algorithm and outcome.",
		}, []string{"engine", "algorithm", "outcome"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "algoviz", Name: "run_duration_seconds",
			Help:    "Wall-clock duration of animated runs.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"engine", "algorithm"}),
		runsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "algoviz", Name: "runs_rejected_total",
			Help: "Runs or mutations refused because a run was in flight.",
		}, []string{"engine"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "algoviz", Name: "cache_operations_total",
			Help: "Trace cache operations by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "algoviz", Name: "cache_written_bytes_total",
			Help: "Bytes written to the trace cache.",
		}, []string{"key_type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "algoviz", Name: "http_requests_total",
			Help: "HTTP responses by route, method and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "algoviz", Name: "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(h.runsStarted, h.runsFinished, h.runDuration, h.runsRejected,
		h.cacheOps, h.cacheBytes, h.httpRequests, h.httpDuration)
	return h
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (h *PrometheusHooks) OnRunStart(_ context.Context, engine, algorithm string, _ int) {
	h.runsStarted.WithLabelValues(engine, algorithm).Inc()
}

func (h *PrometheusHooks) OnRunComplete(_ context.Context, engine, algorithm string, d time.Duration, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = "cancelled"
	default:
		outcome = "error"
	}
	h.runsFinished.WithLabelValues(engine, algorithm, outcome).Inc()
	h.runDuration.WithLabelValues(engine, algorithm).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnRunRejected(_ context.Context, engine string) {
	h.runsRejected.WithLabelValues(engine).Inc()
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ RunHooks   = (*PrometheusHooks)(nil)
	_ CacheHooks = (*PrometheusHooks)(nil)
	_ HTTPHooks  = (*PrometheusHooks)(nil)
)
