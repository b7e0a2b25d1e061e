package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ImmortalDemonGod/prime-directive/internal/config"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
)

// Tagline is the one-line description shown in help output
const Tagline = "Context switch orchestrator: freeze where you are, warp to where you go"

// CLI represents the command-line interface structure
type CLI struct {
	ConfigFile  string           `help:"Registry file (default $PD_CONFIG or $PD_HOME/registry.yaml)" name:"config" type:"path"`
	Debug       bool             `help:"Enable debug logging" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of debug log files to keep (0 = unlimited)" default:"100"`
	Version     kong.VersionFlag `help:"Show version information"`

	Attach     AttachCmd    `cmd:"attach" help:"Attach this terminal to a repository's session (creates if needed)"`
	Cfg        ConfigCmd    `cmd:"" name:"config" help:"Inspect configuration"`
	Daemon     DaemonCmd    `cmd:"daemon" help:"Watch repositories and freeze the ones that go idle"`
	Doctor     DoctorCmd    `cmd:"doctor" help:"Check tmux, editor, AI providers and registered repositories"`
	Freeze     FreezeCmd    `cmd:"freeze" help:"Capture and store a snapshot of a repository"`
	History    HistoryCmd   `cmd:"history" help:"List stored snapshots of a repository"`
	List       ListCmd      `cmd:"list" help:"List registered repositories by priority"`
	Metrics    MetricsCmd   `cmd:"metrics" help:"Show time from switch-in to first commit"`
	ShellInit  ShellInitCmd `cmd:"shell-init" help:"Print or install the shell wrapper that performs terminal handover"`
	Show       ShowCmd      `cmd:"show" help:"Show the latest SITREP of a repository"`
	Status     StatusCmd    `cmd:"status" help:"Show branch, git state and last snapshot per repository"`
	Switch     SwitchCmd    `cmd:"switch" help:"Freeze the current repository and warp to another"`
	Usage      UsageCmd     `cmd:"usage" help:"Show month-to-date AI usage against the budget"`
	VersionCmd VersionCmd   `cmd:"" name:"version" help:"Show version information"`

	// Internal fields (not flags)
	cfg       *config.Config `kong:"-"`
	cfgErr    error          `kong:"-"`
	container *Container     `kong:"-"`
	stderr    io.Writer      `kong:"-"`
	stdout    io.Writer      `kong:"-"`
}

// AfterApply loads the registry and initializes logging after CLI parsing.
// A broken registry is kept as cfgErr so commands that do not need it
// (version, shell-init, config path) still run.
func (c *CLI) AfterApply() error {
	c.cfg, c.cfgErr = config.Load(c.ConfigFile)

	logPath := config.GetLogPath()
	if c.cfg != nil {
		logPath = c.cfg.System.LogPath
	}

	logFilePath, err := logging.Initialize(logging.Options{
		Debug:       c.Debug,
		DebugFile:   c.DebugFile,
		LogPath:     logPath,
		MaxLogFiles: c.MaxLogFiles,
	})
	if err != nil {
		fmt.Fprintf(c.stderr, "Warning: logging disabled: %v\n", err)
	}

	// Child processes (editor, tmux sessions) inherit the debug settings
	if c.Debug || c.DebugFile != "" {
		os.Setenv("PD_DEBUG", "1")
		if c.DebugFile != "" && logFilePath != "" {
			os.Setenv("PD_DEBUG_FILE", logFilePath)
		}
	}

	if c.cfgErr != nil {
		logging.Logger.Warn("Failed to load registry", "error", c.cfgErr)
	} else {
		logging.Logger.Debug("Registry loaded", "path", c.cfg.Path, "repos", len(c.cfg.Repos))
	}
	return nil
}

// Config returns the loaded registry or the error that prevented loading it
func (c *CLI) Config() (*config.Config, error) {
	if c.cfgErr != nil {
		return nil, c.cfgErr
	}
	return c.cfg, nil
}

// Container builds the dependency container on first use
func (c *CLI) Container() (*Container, error) {
	if c.container != nil {
		return c.container, nil
	}
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}
	c.container = container
	return container, nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	var err error
	if c.container != nil {
		err = c.container.Close()
		c.container = nil
	}
	return err
}

// Stdout returns the writer commands print to
func (c *CLI) Stdout() io.Writer {
	if c.stdout == nil {
		return os.Stdout
	}
	return c.stdout
}
