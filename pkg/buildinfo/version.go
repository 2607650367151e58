// Package buildinfo reports which storyswift build is running.
//
// The values are stamped at link time:
//
//	go build -ldflags "-X github.com/matzehuels/storyswift/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/storyswift/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/storyswift/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/storyswift
//
// Version is also part of every result cache key, so upgrading the
// generator never replays units rendered by an older build.
package buildinfo

import "fmt"

// Stamped by -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build identity reported by `storyswift --version` and
// the /healthz endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the stamped build identity.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Dev reports whether the binary was built without a version stamp.
func (i Info) Dev() bool { return i.Version == "dev" }

// Template returns the cobra version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", i.Version, i.Commit, i.Date)
}
