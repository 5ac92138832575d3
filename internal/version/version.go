// Package version holds build metadata injected by the mage build target.
package version

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String formats the build metadata on one line.
func String() string {
	return Version + " (" + CommitHash + ", built " + BuildDate + ")"
}
