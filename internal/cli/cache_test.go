package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/algoviz/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)

	c.Config.Cache.Dir = ""
	dir := c.cacheDir()
	if dir == "" {
		t.Fatal("cacheDir() returned empty string")
	}
	if filepath.Base(dir) != "algoviz" {
		t.Errorf("cacheDir() = %q, should end with 'algoviz'", dir)
	}

	custom := t.TempDir()
	c.Config.Cache.Dir = custom
	if got := c.cacheDir(); got != custom {
		t.Errorf("cacheDir() = %q, want configured %q", got, custom)
	}
}

func TestNewRunnerUsesConfiguredCache(t *testing.T) {
	ctx := context.Background()
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.Config.Cache.Backend = cache.BackendFile
	c.Config.Cache.Dir = t.TempDir()
	c.Config.Cache.TTL.Duration = time.Hour

	r, err := c.newRunner(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Cache.Close()
	if _, ok := r.Cache.(*cache.FileCache); !ok {
		t.Errorf("cache is %T, want *cache.FileCache", r.Cache)
	}
	if r.TTL != time.Hour {
		t.Errorf("TTL = %v", r.TTL)
	}

	r, err = c.newRunner(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Cache.(cache.NullCache); !ok {
		t.Errorf("--no-cache gave %T", r.Cache)
	}
}

func TestCacheLabel(t *testing.T) {
	tests := []struct {
		backend  string
		disabled bool
		want     string
	}{
		{"redis", false, "redis"},
		{"", false, "file"},
		{"redis", true, "disabled"},
	}
	for _, tt := range tests {
		if got := cacheLabel(tt.backend, tt.disabled); got != tt.want {
			t.Errorf("cacheLabel(%q, %v) = %q, want %q", tt.backend, tt.disabled, got, tt.want)
		}
	}
	if got := displayAddr(":8080"); !strings.HasPrefix(got, "localhost") {
		t.Errorf("displayAddr(:8080) = %q", got)
	}
}
