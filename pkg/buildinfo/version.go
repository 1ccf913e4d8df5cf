// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/musicbox/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/musicbox/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// Unstamped builds fall back to the module version recorded by the Go
// toolchain (set for `go install ...@version`).
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Resolved returns Version, or the main module version when Version was
// not stamped.
func Resolved() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}

// String returns a multi-line description of the build.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Resolved(), Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Resolved(), Commit, Date)
}

// UserAgent identifies the server in response headers.
func UserAgent() string {
	return "musicbox/" + Resolved()
}
