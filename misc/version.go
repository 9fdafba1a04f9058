// Package misc holds build time information.
package misc

import (
	"runtime/debug"
)

// Set with -ldflags "-X figmark/misc.version=... -X figmark/misc.gitHash=...".
var (
	version = "dev"
	gitHash = ""
)

const appName = "figmark"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash program was built from, falls back to VCS
// information recorded by the toolchain.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
