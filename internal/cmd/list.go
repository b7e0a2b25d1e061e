package cmd

import (
	"fmt"

	"github.com/ImmortalDemonGod/prime-directive/internal/theme"
	"github.com/ImmortalDemonGod/prime-directive/internal/ui"
)

// ListCmd lists registered repositories
type ListCmd struct{}

// Run executes the list command
func (l *ListCmd) Run(cli *CLI) error {
	cfg, err := cli.Config()
	if err != nil {
		return err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	out := cli.Stdout()
	if registry.Len() == 0 {
		fmt.Fprintln(out, theme.MutedStyle.Render("No repositories registered. Run 'pd config example' for a sample registry."))
		return nil
	}
	fmt.Fprintln(out, ui.ReposTable(registry.All()))
	return nil
}
