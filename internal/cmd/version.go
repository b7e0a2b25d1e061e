package cmd

import (
	"fmt"
	"runtime"
)

// BuildInfo is injected by main from ldflags
type BuildInfo struct {
	Commit    string
	Date      string
	GoVersion string
	Version   string
}

var buildInfo = BuildInfo{
	Commit:    "unknown",
	Date:      "unknown",
	GoVersion: runtime.Version(),
	Version:   "dev",
}

// SetBuildInfo sets the version information shown by --version and pd version
func SetBuildInfo(info BuildInfo) {
	if info.GoVersion == "" || info.GoVersion == "unknown" {
		info.GoVersion = runtime.Version()
	}
	buildInfo = info
}

// VersionInfo returns formatted version information for CLI display
func VersionInfo() string {
	return fmt.Sprintf("pd %s (commit: %s, built: %s, go: %s)",
		buildInfo.Version, buildInfo.Commit, buildInfo.Date, buildInfo.GoVersion)
}

// VersionCmd prints version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(cli *CLI) error {
	fmt.Fprintln(cli.Stdout(), VersionInfo())
	return nil
}
