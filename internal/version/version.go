// Package version provides build version information for the specdown CLI.
// This is the tool's own version, not the version of any documented project;
// project versions live in the ledger.
package version

// Version is set via ldflags during build.
var Version = "dev"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
