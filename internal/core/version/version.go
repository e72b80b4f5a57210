// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are set at build time using -ldflags.
func Info() BuildInfo {
	// -ldflags "-X 'reviewharvest/internal/core/version.version=v0.1.0'
	// -X 'reviewharvest/internal/core/version.commit=abcd' -X 'reviewharvest/internal/core/version.date=2025-09-02'"
	return BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// Service is the name reported by the api and logged at startup
const Service = "reviewharvest-api"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
