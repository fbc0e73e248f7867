package version

import (
	"fmt"
	"runtime"
)

// Application metadata reported by the API and the -version flag.
const (
	AppTitle       = "FastAPI Demo"
	AppDescription = "Production-ready FastAPI with Alpine Docker"

	// APIVersion is the version every response body reports. It is the API
	// contract version and does not follow BuildVersion.
	APIVersion = "1.0.0"
)

// Version information that can be set at build time
var (
	// These can be set via ldflags during build:
	// go build -ldflags "-X github.com/phase2-labs/demo-api/internal/version.BuildVersion=v1.2.3 -X github.com/phase2-labs/demo-api/internal/version.BuildCommit=$(git rev-parse --short HEAD)"
	BuildVersion = "v1.0.0"
	BuildTime    = "unknown"
	BuildCommit  = "unknown"
)

// GetVersion returns the current version string.
// This is typically set at build time using ldflags.
func GetVersion() string {
	return BuildVersion
}

// GetBuildInfo returns comprehensive build information including version, time, and commit.
func GetBuildInfo() string {
	return fmt.Sprintf("%s (built: %s, commit: %s, go: %s)",
		BuildVersion, BuildTime, BuildCommit, runtime.Version())
}
