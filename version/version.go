// Package version holds build metadata injected at link time.
package version

import "runtime"

var (
	// GitRelease is the release tag, set via -ldflags.
	GitRelease = "dev"
	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"
	// GitCommitDate is the commit date.
	GitCommitDate = "unknown"
	// GoInfo is the Go toolchain version used for the build.
	GoInfo = runtime.Version()
)
