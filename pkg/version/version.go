// Package version reports the scamflight build version.
package version

import "runtime/debug"

// These are set with -ldflags at release time.
var (
	version   = "dev"     //nolint:gochecknoglobals // Set via ldflags.
	gitCommit = "unknown" //nolint:gochecknoglobals // Set via ldflags.
	buildDate = "unknown" //nolint:gochecknoglobals // Set via ldflags.
)

// GetVersion returns the release version, falling back to the module
// version recorded by the Go toolchain for `go install` builds.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns when the binary was built.
func GetBuildDate() string {
	return buildDate
}
