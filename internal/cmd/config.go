package cmd

import (
	"fmt"

	"github.com/ImmortalDemonGod/prime-directive/internal/config"
	"github.com/ImmortalDemonGod/prime-directive/internal/theme"
)

// ConfigCmd groups configuration inspection commands
type ConfigCmd struct {
	Example ConfigExampleCmd `cmd:"example" help:"Print a sample registry.yaml"`
	Path    ConfigPathCmd    `cmd:"path" help:"Print the resolved configuration paths"`
}

// ConfigExampleCmd prints a sample registry
type ConfigExampleCmd struct{}

// Run executes the config example command
func (c *ConfigExampleCmd) Run(cli *CLI) error {
	data, err := config.Example()
	if err != nil {
		return err
	}
	_, err = cli.Stdout().Write(data)
	return err
}

// ConfigPathCmd prints the resolved paths
type ConfigPathCmd struct{}

// Run executes the config path command. It still prints the paths when
// the registry fails to load.
func (c *ConfigPathCmd) Run(cli *CLI) error {
	out := cli.Stdout()
	registry := config.GetRegistryPath()
	if cli.ConfigFile != "" {
		registry = config.ExpandPath(cli.ConfigFile)
	}
	dbPath, logPath := config.GetDBPath(), config.GetLogPath()

	cfg, err := cli.Config()
	if err == nil {
		dbPath, logPath = cfg.System.DBPath, cfg.System.LogPath
		if cfg.Path == "" {
			registry += " (not found, using defaults)"
		}
	}

	fmt.Fprintf(out, "%s %s\n", theme.LabelStyle.Render("home:    "), config.GetHome())
	fmt.Fprintf(out, "%s %s\n", theme.LabelStyle.Render("registry:"), registry)
	fmt.Fprintf(out, "%s %s\n", theme.LabelStyle.Render("database:"), dbPath)
	fmt.Fprintf(out, "%s %s\n", theme.LabelStyle.Render("log:     "), logPath)
	return err
}
