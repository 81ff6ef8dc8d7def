// Package version reports the build of the running binary.
package version

// BuildInfo holds version information about the build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for service. version, commit and date
// are set at link time:
//
//	-ldflags "-X 'codemix/internal/core/version.version=v0.1.0' -X 'codemix/internal/core/version.commit=abcd'"
func Info(service ...string) BuildInfo {
	name := "codemix-api"
	if len(service) > 0 && service[0] != "" {
		name = service[0]
	}
	return BuildInfo{
		Service: name,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String is the one line form used by the CLI
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
