package cmd

import (
	"context"
	"fmt"

	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
)

// AttachCmd attaches this terminal to a repository's session directly
type AttachCmd struct {
	Repo string `arg:"" help:"Repository id to attach to"`
}

// Run executes the attach command. Outside tmux this replaces the pd
// process with tmux attach-session and does not return on success.
func (a *AttachCmd) Run(cli *CLI) error {
	container, err := cli.Container()
	if err != nil {
		return err
	}
	repo, err := container.Registry.Lookup(a.Repo)
	if err != nil {
		return err
	}

	// Nothing is written after the attach, release the store before exec
	if err := cli.Close(); err != nil {
		logging.Logger.Warn("Failed to close store before attach", "error", err)
	}

	res, err := container.SessionPreparer.EnsureSession(context.Background(), repo, true)
	if err != nil {
		return err
	}
	if res.Created {
		fmt.Fprintf(cli.Stdout(), "Created session %s\n", res.Name)
	}
	return nil
}
