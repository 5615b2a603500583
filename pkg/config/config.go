// Package config loads algoviz settings from a TOML file.
//
// Every field has a default, so a missing file or a partial file is fine:
//
//	seed = 42
//
//	[sort]
//	array_size = 30
//	delay_ms = 120
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/cache"
	verrors "github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/pathfind"
	"github.com/matzehuels/algoviz/pkg/search"
	"github.com/matzehuels/algoviz/pkg/sorting"
	"github.com/matzehuels/algoviz/pkg/tree"
)

// Config is the top-level configuration.
type Config struct {
	// Seed seeds every generator; 0 means time based.
	Seed   uint64       `toml:"seed"`
	Sort   SortConfig   `toml:"sort"`
	Search SearchConfig `toml:"search"`
	Grid   GridConfig   `toml:"grid"`
	Timing TimingConfig `toml:"timing"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// SortConfig holds Sorting Engine settings.
type SortConfig struct {
	ArraySize int `toml:"array_size"`
	DelayMS   int `toml:"delay_ms"`
	MinValue  int `toml:"min_value"`
	MaxValue  int `toml:"max_value"`
}

// SearchConfig holds Search Engine settings.
type SearchConfig struct {
	Size     int `toml:"size"`
	MaxValue int `toml:"max_value"`
}

// GridConfig holds Pathfinding Engine settings.
type GridConfig struct {
	MazeDensity float64 `toml:"maze_density"`
}

// TimingConfig holds the fixed animation delays, in milliseconds.
type TimingConfig struct {
	LinearSearchMS  int `toml:"linear_search_ms"`
	BinarySearchMS  int `toml:"binary_search_ms"`
	BinaryPresortMS int `toml:"binary_presort_ms"`
	VisitMS         int `toml:"visit_ms"`
	PathMS          int `toml:"path_ms"`
	TreeMS          int `toml:"tree_ms"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr       string   `toml:"addr"`
	SessionTTL Duration `toml:"session_ttl"`
}

// CacheConfig selects the trace cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	Prefix    string   `toml:"prefix"`
	TTL       Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a string such as "30m".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults.
const (
	DefaultAddr       = ":8080"
	DefaultSessionTTL = 30 * time.Minute
)

// Default returns the built-in configuration.
func Default() Config {
	st, pt := search.DefaultTiming(), pathfind.DefaultTiming()
	return Config{
		Sort: SortConfig{
			ArraySize: sorting.DefaultSize,
			DelayMS:   int(anim.DefaultDelay / time.Millisecond),
			MinValue:  sorting.DefaultMinValue,
			MaxValue:  sorting.DefaultMaxValue,
		},
		Search: SearchConfig{
			Size:     search.DefaultSize,
			MaxValue: search.DefaultMaxValue,
		},
		Grid: GridConfig{MazeDensity: pathfind.DefaultMazeDensity},
		Timing: TimingConfig{
			LinearSearchMS:  ms(st.Linear),
			BinarySearchMS:  ms(st.Binary),
			BinaryPresortMS: ms(st.Presort),
			VisitMS:         ms(pt.Visit),
			PathMS:          ms(pt.Path),
			TreeMS:          ms(tree.DefaultVisitDelay),
		},
		Server: ServerConfig{
			Addr:       DefaultAddr,
			SessionTTL: Duration{DefaultSessionTTL},
		},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			Dir:     cache.DefaultDir(),
			TTL:     Duration{cache.DefaultTTL},
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults;
// a named file that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, verrors.Wrap(verrors.ErrCodeNotFound, err, "config file %s", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result. Unknown
// keys are rejected so typos do not go unnoticed.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, verrors.Wrap(verrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, verrors.New(verrors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func ms(d time.Duration) int { return int(d / time.Millisecond) }

func msDuration(v int) time.Duration { return time.Duration(v) * time.Millisecond }
