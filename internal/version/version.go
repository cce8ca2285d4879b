// Package version carries build metadata injected with -ldflags -X.
package version

import "fmt"

var (
	// Version is the release tag of the binary.
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String formats the metadata for `jetforest version`.
func String() string {
	return fmt.Sprintf("jetforest %s (%s, built %s)", Version, GitSHA, BuildTime)
}
