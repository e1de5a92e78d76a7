// Package version provides version information for the hurl CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is set via ldflags during build.
var Version = "dev"

// GetVersion returns the current version string. Builds installed with
// "go install" report their module version when none was set via ldflags.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// String returns the version line printed by "hurl version".
func String() string {
	return fmt.Sprintf("hurl %s (%s %s/%s)", GetVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
