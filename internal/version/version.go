// Package version carries build metadata stamped in by the linker.
package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"     // Default value if not built with LDFLAGS
	CommitHash = "unknown" // Default value
	BuildDate  = "unknown" // Default value
)

// Info returns the multi-line report printed by the version command.
func Info() string {
	return fmt.Sprintf("leftright version %s\nCommit: %s\nBuilt: %s\n", Version, CommitHash, BuildDate)
}
