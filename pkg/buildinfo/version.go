// Package buildinfo exposes version information stamped at build time:
//
//	go build -ldflags "-X github.com/matzehuels/stackview/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/stackview/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/stackview/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

const devVersion = "dev"

var (
	// Version is the release version, "dev" for unstamped builds.
	Version = devVersion

	// Commit is the source revision.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Fingerprint identifies the synthesis code for cache keys. Release builds
// use the version; unstamped builds also include the commit so results
// cached by one development build are not served to another.
func Fingerprint() string {
	if Version == devVersion {
		return Version + "+" + Commit
	}
	return Version
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
