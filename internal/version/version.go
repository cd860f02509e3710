// Package version interprets the build information injected with ldflags.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Info is the build identity of the running binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Semver parses Version, tolerating a leading "v". Development builds
// ("dev", empty, or anything unparsable) return an error.
func (i Info) Semver() (*semver.Version, error) {
	return parseSemver(i.Version)
}

// IsDevelopment reports whether the binary was built without a release
// version.
func (i Info) IsDevelopment() bool {
	_, err := i.Semver()
	return err != nil
}

// Short returns the normalized version number, or the raw string for
// development builds.
func (i Info) Short() string {
	v, err := i.Semver()
	if err != nil {
		if i.Version == "" {
			return "dev"
		}
		return i.Version
	}
	return v.String()
}

// Describe renders the one-line version banner.
func (i Info) Describe(cliName string) string {
	s := fmt.Sprintf("%s version %s (commit: %s, built: %s)", cliName, i.Short(), i.Commit, i.Date)
	if i.IsDevelopment() {
		s += " [development build]"
	} else if v, _ := i.Semver(); v.Prerelease() != "" {
		s += " [pre-release]"
	}
	return s
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if version == "" || version == "dev" {
		return nil, fmt.Errorf("development build has no semantic version")
	}
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return v, nil
}
