package trace

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/cache"
	"github.com/matzehuels/algoviz/pkg/observability"
	"github.com/matzehuels/algoviz/pkg/pathfind"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/search"
	"github.com/matzehuels/algoviz/pkg/sorting"
	"github.com/matzehuels/algoviz/pkg/tree"
)

const keyType = "trace"

// Runner computes traces and caches them.
//
// A Runner holds no per-run state; one value can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer and a nil logger uses log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: cache.DefaultTTL}
}

// Execute returns the trace for req, from the cache when possible. hit
// reports whether the trace was served from the cache.
func (r *Runner) Execute(ctx context.Context, req Request) (tr *Trace, hit bool, err error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}
	alg, err := canonicalAlgorithm(req)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.TraceKey(string(req.Engine), alg, req.Input())
	hooks := observability.Cache()

	if !req.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warn("trace cache read failed", "key", key, "err", err)
		} else if ok {
			var cached Trace
			if err := json.Unmarshal(data, &cached); err == nil {
				hooks.OnCacheHit(ctx, keyType)
				return &cached, true, nil
			}
		}
		hooks.OnCacheMiss(ctx, keyType)
	}

	start := time.Now()
	tr, err = Compute(ctx, req, r.Logger)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("computed trace",
		"engine", req.Engine,
		"algorithm", req.Algorithm,
		"events", len(tr.Events),
		"duration", time.Since(start))

	if data, err := json.Marshal(tr); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("trace cache write failed", "key", key, "err", err)
		} else {
			hooks.OnCacheSet(ctx, keyType, len(data))
		}
	}
	return tr, false, nil
}

// canonicalAlgorithm parses the request's algorithm for its engine, so
// spellings that differ only in case or padding share a cache entry.
func canonicalAlgorithm(req Request) (string, error) {
	switch req.Engine {
	case EngineSort:
		alg, err := sorting.ParseAlgorithm(req.Algorithm)
		return string(alg), err
	case EngineSearch:
		alg, err := search.ParseAlgorithm(req.Algorithm)
		return string(alg), err
	case EnginePath:
		alg, err := pathfind.ParseAlgorithm(req.Algorithm)
		return string(alg), err
	case EngineTree:
		order, err := tree.ParseOrder(req.Algorithm)
		return string(order), err
	}
	return "", fmt.Errorf("engine %q has no trace", req.Engine)
}

// Compute runs req with an instant clock and records every event. It never
// touches a cache.
func Compute(ctx context.Context, req Request, logger *log.Logger) (*Trace, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	pacer := anim.NewPacer(anim.Instant, 0)
	rec := &render.Recorder{}

	tr := &Trace{
		ID:        uuid.NewString(),
		Engine:    req.Engine,
		Input:     req.Input(),
		CreatedAt: time.Now().UTC(),
	}

	switch req.Engine {
	case EngineSort:
		alg, err := sorting.ParseAlgorithm(req.Algorithm)
		if err != nil {
			return nil, err
		}
		values := append([]int(nil), req.Values...)
		if err := rec.Emit(ctx, render.Reset(render.ScopeSort, values)); err != nil {
			return nil, err
		}
		if err := sorting.Run(ctx, values, alg, pacer, rec, logger); err != nil {
			return nil, err
		}
		tr.Algorithm = string(alg)
		tr.Result.Values = values

	case EngineSearch:
		alg, err := search.ParseAlgorithm(req.Algorithm)
		if err != nil {
			return nil, err
		}
		values := append([]int(nil), req.Values...)
		idx, err := search.Run(ctx, values, *req.Target, alg, pacer, rec, search.DefaultTiming(), logger)
		if err != nil {
			return nil, err
		}
		tr.Algorithm = string(alg)
		tr.Result.Index = &idx

	case EnginePath:
		alg, err := pathfind.ParseAlgorithm(req.Algorithm)
		if err != nil {
			return nil, err
		}
		g := pathfind.NewGrid()
		for _, w := range req.Walls {
			if err := g.SetWall(w, true); err != nil {
				return nil, err
			}
		}
		res, err := pathfind.Run(ctx, g, alg, pacer, rec, pathfind.DefaultTiming(), logger)
		if err != nil {
			return nil, err
		}
		tr.Algorithm = string(alg)
		tr.Result.State = res.State.String()
		tr.Result.Visited = len(res.Visited)
		tr.Result.Path = res.Path

	case EngineTree:
		order, err := tree.ParseOrder(req.Algorithm)
		if err != nil {
			return nil, err
		}
		t := tree.Sample()
		if len(req.Values) > 0 {
			t = tree.New()
			for _, v := range req.Values {
				t.Insert(v)
			}
		}
		if err := rec.Emit(ctx, render.Reset(render.ScopeTree, t.Values(tree.PreOrder))); err != nil {
			return nil, err
		}
		seq, err := tree.Run(ctx, t, order, pacer, rec, tree.DefaultVisitDelay, logger)
		if err != nil {
			return nil, err
		}
		tr.Algorithm = string(order)
		tr.Result.Sequence = seq

	default:
		return nil, fmt.Errorf("engine %q has no trace", req.Engine)
	}

	tr.Events = rec.Events()
	return tr, nil
}
