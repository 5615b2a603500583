// Package buildinfo reports the version of the algoviz binary.
//
// Release builds set the variables through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/algoviz/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/algoviz/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/algoviz/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Without ldflags, Commit and Date fall back to the VCS stamp the Go
// toolchain embeds in the binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build information.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

var (
	once     sync.Once
	resolved Info
)

// Get returns the build information, filling gaps from debug.ReadBuildInfo.
func Get() Info {
	once.Do(func() {
		resolved = Info{Version: Version, Commit: Commit, Date: Date}
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if resolved.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			resolved.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && resolved.Commit == "none":
				resolved.Commit = s.Value
			case s.Key == "vcs.time" && resolved.Date == "unknown":
				resolved.Date = s.Value
			}
		}
	})
	return resolved
}

// String returns the formatted build information.
func String() string {
	i := Get()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template returns the version template string for cobra.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", i.Version, i.Commit, i.Date)
}
