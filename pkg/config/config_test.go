package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/algoviz/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Sort.ArraySize != 50 || cfg.Sort.DelayMS != 200 {
		t.Errorf("sort defaults = %+v", cfg.Sort)
	}
	if cfg.Timing.TreeMS != 800 {
		t.Errorf("tree delay = %d", cfg.Timing.TreeMS)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
seed = 7

[sort]
array_size = 12
delay_ms = 50

[timing]
visit_ms = 5

[server]
addr = "127.0.0.1:9000"
session_ttl = "5m"

[cache]
backend = "none"
ttl = "1h"
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 7 || cfg.Sort.ArraySize != 12 || cfg.Sort.DelayMS != 50 {
		t.Errorf("parsed = %+v", cfg)
	}
	if cfg.Sort.MaxValue != 289 {
		t.Errorf("unset keys should keep defaults, max_value = %d", cfg.Sort.MaxValue)
	}
	if cfg.Server.SessionTTL.Duration != 5*time.Minute || cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("durations = %v, %v", cfg.Server.SessionTTL, cfg.Cache.TTL)
	}

	opts := cfg.EngineOptions(nil, nil)
	if opts.SortDelay != 50*time.Millisecond || opts.PathTiming.Visit != 5*time.Millisecond {
		t.Errorf("engine options = %+v", opts)
	}
	if opts.PathTiming.Path != 100*time.Millisecond {
		t.Errorf("path delay = %v", opts.PathTiming.Path)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", `[sort`},
		{"unknown key", "[sort]\nspeed = 3"},
		{"array too large", "[sort]\narray_size = 1000"},
		{"empty range", "[sort]\nmin_value = 50\nmax_value = 10"},
		{"density", "[grid]\nmaze_density = 1.5"},
		{"negative timing", "[timing]\npath_ms = -1"},
		{"backend", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
		{"bad duration", "[server]\nsession_ttl = \"soon\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}

	path := filepath.Join(t.TempDir(), "algoviz.toml")
	if err := os.WriteFile(path, []byte("[search]\nsize = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.Size != 8 {
		t.Errorf("search.size = %d", cfg.Search.Size)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file: %v", err)
	}
}
