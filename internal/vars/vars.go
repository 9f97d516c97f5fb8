// Package vars holds build-time variables populated via the linker (ldflags).
package vars

import (
	"fmt"
	"os"
	"time"
)

// License of the project
const License = "AGPL-3.0"

var (
	// Name of the project
	Name = "fivestat"

	// Version of application (git tag) semver/tag, e.g. v1.2.3
	Version = "dev"

	// Commit is the current git commit, full or short git SHA
	Commit = "unknown"

	// BuildTime is the time of start build app, RFC3339 UTC
	BuildTime = time.Unix(0, 0)

	// URL to repository (https)
	URL = "https://github.com/woozymasta/fivestat"

	_buildTime string
)

// BuildInfo optional helper to expose safe values everywhere.
type BuildInfo struct {
	// betteralign:ignore

	// Project name
	Name string `json:"name" example:"fivestat"`

	// Version of application (git tag) semver/tag, e.g. v1.2.3
	Version string `json:"version" example:"v1.2.3"`

	// Current git commit, full or short git SHA
	Commit string `json:"commit,omitempty" example:"da15c174cd2ada1ad247906536c101e8f6799def"`

	// Time of start build app, RFC3339 UTC
	BuildTime time.Time `json:"build_time,omitempty" example:"1970-01-01T00:00:00Z"`

	// URL to repository (https)
	URL string `json:"url,omitempty" example:"https://github.com/woozymasta/fivestat"`

	// License
	License string `json:"license,omitempty" example:"AGPL-3.0"`
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

// Print writes the build information to the standard output.
func Print() {
	fmt.Printf(`name:    %s
url:     %s
file:    %s
version: %s
commit:  %s
built:   %s
license: %s
`, Name, URL, os.Args[0], Version, Commit, BuildTime, License)
}

// Info returns a BuildInfo struct containing detailed build metadata.
func Info() BuildInfo {
	return BuildInfo{
		Name:      Name,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		URL:       URL,
		License:   License,
	}
}
