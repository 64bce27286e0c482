// Package version carries the build information of the patterngen binary.
package version

import (
	"fmt"
	"runtime"
)

// Build information, injected at build time:
//
//	go build -ldflags "\
//	  -X github.com/syssam/patterngen/version.Version=v0.3.0 \
//	  -X github.com/syssam/patterngen/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/syssam/patterngen/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version when the binary was tagged.
	Version = "dev"

	// Commit is the git commit hash the binary was built from.
	Commit = "unknown"

	// Date is when the binary was built, in ISO-8601.
	Date = "unknown"
)

// Info bundles version and platform details for display.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a single-line human-readable description.
func (i Info) String() string {
	return fmt.Sprintf("patterngen %s (commit %s, built %s)", i.Version, i.Short(), i.Date)
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.Commit) >= 7 {
		return i.Commit[:7]
	}
	return i.Commit
}
