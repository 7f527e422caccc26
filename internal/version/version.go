// Package version reports the build version of the accordion binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/accordion/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/accordion/internal/version.Commit=abc123"
//
// Otherwise they are filled from the module and VCS build info, falling back
// to "dev" and "unknown".
var (
	Version = ""
	Commit  = ""
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(info)
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func fillFromBuildInfo(info *debug.BuildInfo) {
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = strings.TrimPrefix(info.Main.Version, "v")
	}
	if Commit != "" {
		return
	}

	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		revision += "-dirty"
	}
	Commit = revision
}

// Full returns the version with commit and Go toolchain.
func Full() string {
	return fmt.Sprintf("%s (commit: %s, %s)", Version, Commit, runtime.Version())
}
