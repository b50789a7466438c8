// Package version holds build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version (injected at build time via ldflags)
	Version = "dev"

	// GitCommit is the git commit hash (injected at build time via ldflags)
	GitCommit = "unknown"

	// BuildDate is the build date (injected at build time via ldflags)
	BuildDate = "unknown"
)

// Info is the build metadata in structured form.
type Info struct {
	Version   string `yaml:"version" json:"version"`
	GitCommit string `yaml:"git_commit" json:"git_commit"`
	BuildDate string `yaml:"build_date" json:"build_date"`
	GoVersion string `yaml:"go_version" json:"go_version"`
	Platform  string `yaml:"platform" json:"platform"`
}

// Get returns the build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetFullVersion returns a detailed version string with build info
func GetFullVersion() string {
	i := Get()
	return fmt.Sprintf("seqscan %s (commit: %s, built: %s, %s %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// GetShortVersion returns a short version string
func GetShortVersion() string {
	if GitCommit != "unknown" && len(GitCommit) > 7 {
		return fmt.Sprintf("%s-%s", Version, GitCommit[:7])
	}
	return Version
}
