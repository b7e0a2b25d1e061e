package cmd

import (
	"context"
	"fmt"

	"github.com/ImmortalDemonGod/prime-directive/internal/theme"
	"github.com/ImmortalDemonGod/prime-directive/internal/ui"
)

// StatusCmd shows branch, git state and last snapshot per repository
type StatusCmd struct{}

// Run executes the status command
func (s *StatusCmd) Run(cli *CLI) error {
	container, err := cli.Container()
	if err != nil {
		return err
	}

	rows, err := container.StatusService.Status(context.Background())
	if err != nil {
		return err
	}

	out := cli.Stdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, theme.MutedStyle.Render("No repositories registered."))
		return nil
	}
	fmt.Fprintln(out, ui.StatusTable(rows))
	return nil
}
