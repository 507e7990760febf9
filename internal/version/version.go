// Package version holds build metadata injected at link time via -ldflags.
package version

var (
	// BuildVersion is the release version, e.g. "1.2.0". "dev" for local builds.
	BuildVersion = "dev"

	// BuildCommit is the short git commit hash the binary was built from.
	BuildCommit = "unknown"

	// SentryDSN enables crash reporting when set at build time. Empty disables it.
	SentryDSN = ""
)
