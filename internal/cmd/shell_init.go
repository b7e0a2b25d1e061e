package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ImmortalDemonGod/prime-directive/internal/handover"
	"github.com/ImmortalDemonGod/prime-directive/internal/theme"
)

// ShellInitCmd prints or installs the shell wrapper
type ShellInitCmd struct {
	Binary  string `help:"Command the wrapper invokes" default:"pd"`
	Install bool   `help:"Append the wrapper loader to the shell's rc file (idempotent)"`
	Shell   string `arg:"" optional:"" help:"Shell to generate for (bash, zsh, fish; default from $SHELL)"`
}

// Run executes the shell-init command
func (s *ShellInitCmd) Run(cli *CLI) error {
	shell := s.Shell
	if shell == "" {
		shell = filepath.Base(os.Getenv("SHELL"))
	}
	out := cli.Stdout()

	if !s.Install {
		script, err := handover.Script(shell, s.Binary)
		if err != nil {
			return err
		}
		fmt.Fprint(out, script)
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	rcFile, added, err := handover.Install(home, shell, s.Binary)
	if err != nil {
		return err
	}
	if !added {
		fmt.Fprintln(out, theme.MutedStyle.Render("Already installed in "+rcFile))
		return nil
	}
	fmt.Fprintln(out, theme.OKStyle.Render("✓ Installed in "+rcFile))
	fmt.Fprintf(out, "Restart your shell or run: source %s\n", rcFile)
	return nil
}
