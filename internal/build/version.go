// Package build provides version and build information for yuzu-updater.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// UserAgent returns the User-Agent product token for this build, e.g. "yuzu-updater/1.2.0".
func UserAgent(product string) string {
	return product + "/" + Version
}
