// Package version holds build metadata injected via ldflags.
package version

import "runtime/debug"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Date    = "unknown"
	commit  = ""
)

// Commit returns the VCS revision the binary was built from: the ldflags
// value when set, otherwise the vcs.revision build setting, otherwise "unknown".
func Commit() string {
	if commit != "" {
		return commit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return s.Value
			}
		}
	}
	return "unknown"
}
