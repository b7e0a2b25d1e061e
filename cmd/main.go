package main

import (
	"os"

	"github.com/ImmortalDemonGod/prime-directive/internal/cmd"
)

// Build information injected at build time via ldflags
// Example: -ldflags="-X main.Version=v1.0.0 -X main.Commit=abc123 ..."
var (
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
	Version   = "dev"
)

func main() {
	cmd.SetBuildInfo(cmd.BuildInfo{
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Version:   Version,
	})

	// Exit statuses, including the handover status, are decided in one place
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
