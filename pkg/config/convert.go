package config

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/cache"
	"github.com/matzehuels/algoviz/pkg/engine"
	"github.com/matzehuels/algoviz/pkg/pathfind"
	"github.com/matzehuels/algoviz/pkg/render"
	"github.com/matzehuels/algoviz/pkg/search"
)

// EngineOptions maps the configuration onto engine options. Sink, clock
// and logger are left to the caller.
func (c Config) EngineOptions(sink render.Sink, logger *log.Logger) engine.Options {
	return engine.Options{
		Sink:           sink,
		Logger:         logger,
		Seed:           c.Seed,
		SortSize:       c.Sort.ArraySize,
		SortMinValue:   c.Sort.MinValue,
		SortMaxValue:   c.Sort.MaxValue,
		SortDelay:      msDuration(c.Sort.DelayMS),
		SearchSize:     c.Search.Size,
		SearchMaxValue: c.Search.MaxValue,
		SearchTiming: search.Timing{
			Linear:  msDuration(c.Timing.LinearSearchMS),
			Binary:  msDuration(c.Timing.BinarySearchMS),
			Presort: msDuration(c.Timing.BinaryPresortMS),
		},
		MazeDensity: c.Grid.MazeDensity,
		PathTiming: pathfind.Timing{
			Visit: msDuration(c.Timing.VisitMS),
			Path:  msDuration(c.Timing.PathMS),
		},
		TreeDelay: msDuration(c.Timing.TreeMS),
	}
}

// CacheOptions maps the [cache] section onto backend options.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:   c.Cache.RedisAddr,
			Prefix: c.Cache.Prefix,
		},
	}
}
