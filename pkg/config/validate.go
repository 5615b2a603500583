package config

import (
	"github.com/matzehuels/algoviz/pkg/cache"
	verrors "github.com/matzehuels/algoviz/pkg/errors"
)

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := c.validateSort(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if c.Grid.MazeDensity < 0 || c.Grid.MazeDensity >= 1 {
		return invalid("grid.maze_density must be in [0, 1), got %g", c.Grid.MazeDensity)
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	return c.validateCache()
}

func (c *Config) validateSort() error {
	if err := verrors.ValidateArraySize(c.Sort.ArraySize); err != nil {
		return verrors.Wrap(verrors.ErrCodeInvalidConfig, err, "sort.array_size")
	}
	if c.Sort.DelayMS <= 0 {
		return invalid("sort.delay_ms must be positive, got %d", c.Sort.DelayMS)
	}
	if c.Sort.MinValue < 0 || c.Sort.MaxValue <= c.Sort.MinValue {
		return invalid("sort value range [%d, %d] is empty", c.Sort.MinValue, c.Sort.MaxValue)
	}
	return nil
}

func (c *Config) validateSearch() error {
	if err := verrors.ValidateArraySize(c.Search.Size); err != nil {
		return verrors.Wrap(verrors.ErrCodeInvalidConfig, err, "search.size")
	}
	if c.Search.MaxValue <= 0 {
		return invalid("search.max_value must be positive, got %d", c.Search.MaxValue)
	}
	return nil
}

func (c *Config) validateTiming() error {
	fields := []struct {
		name  string
		value int
	}{
		{"linear_search_ms", c.Timing.LinearSearchMS},
		{"binary_search_ms", c.Timing.BinarySearchMS},
		{"binary_presort_ms", c.Timing.BinaryPresortMS},
		{"visit_ms", c.Timing.VisitMS},
		{"path_ms", c.Timing.PathMS},
		{"tree_ms", c.Timing.TreeMS},
	}
	for _, f := range fields {
		if f.value < 0 {
			return invalid("timing.%s must not be negative, got %d", f.name, f.value)
		}
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile:
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return invalid("cache.redis_addr is required for the redis backend")
		}
	default:
		return invalid("cache.backend must be none, file or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return invalid("cache.ttl must not be negative")
	}
	if c.Server.SessionTTL.Duration <= 0 {
		return invalid("server.session_ttl must be positive")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return verrors.New(verrors.ErrCodeInvalidConfig, format, args...)
}
