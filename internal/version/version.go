// Package version exposes the build's version and commit, set via
// ldflags or recovered from Go build info.
package version

import (
	"fmt"
	"runtime/debug"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/mwhitley/upnpscan/internal/version.Version=v1.2.3 \
//	                   -X github.com/mwhitley/upnpscan/internal/version.Commit=abc123"
//
// If not set, they are populated from VCS build info when available.
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			var revision, modified string
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					revision = setting.Value
				case "vcs.modified":
					modified = setting.Value
				}
			}

			if revision != "" {
				if len(revision) > 7 {
					revision = revision[:7]
				}
				Commit = revision
				if modified == "true" {
					Commit += "-dirty"
				}
			}
		}
	}

	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
