package version

import "runtime/debug"

// Build-time parameters set via -ldflags

var Version = "devel"

// `go install` builds carry no -ldflags, so fall back to the module version
// embedded in the build info.
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	mainVersion := info.Main.Version
	if mainVersion != "" && mainVersion != "(devel)" {
		Version = mainVersion
	}
}
