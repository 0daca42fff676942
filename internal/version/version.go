// Package version provides build-time version information for tonal.
// Version information is injected at build time using ldflags.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

var (
	// Version is the semantic version of the application.
	// Injected at build time via: -ldflags "-X github.com/jmylchreest/tonal/internal/version.Version=x.y.z".
	Version = "dev"

	// Commit is the git commit hash of the build.
	Commit = unknown

	// Date is the build date in RFC3339 format.
	Date = unknown

	// GoVersion is the Go version used to build the binary.
	GoVersion = runtime.Version()
)

// Info holds all version information for the application.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns all version information as a structured type. Builds
// without ldflags fall back to the module and VCS data embedded by go build.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unknown {
				info.Date = s.Value
			}
		}
	}
}

// String returns a human-readable version string.
func String() string {
	info := GetInfo()
	if info.Commit != unknown && info.Date != unknown {
		return fmt.Sprintf("tonal version %s (commit: %s, built: %s, %s, %s)",
			info.Version, shortCommit(info.Commit), info.Date, info.GoVersion, info.Platform)
	}
	return fmt.Sprintf("tonal version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}

// Short returns a short version string suitable for CLI output.
func Short() string {
	return GetInfo().Version
}
