package cmd

import (
	"context"
	"fmt"

	"github.com/ImmortalDemonGod/prime-directive/internal/theme"
	"github.com/ImmortalDemonGod/prime-directive/internal/ui"
)

// MetricsCmd shows the time-to-first-commit KPI
type MetricsCmd struct {
	Repo string `help:"Only show this repository"`
}

// Run executes the metrics command
func (m *MetricsCmd) Run(cli *CLI) error {
	container, err := cli.Container()
	if err != nil {
		return err
	}
	if m.Repo != "" {
		if _, err := container.Registry.Lookup(m.Repo); err != nil {
			return err
		}
	}

	rows, err := container.KPIService.TimeToCommit(context.Background(), m.Repo)
	if err != nil {
		return err
	}

	out := cli.Stdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, theme.MutedStyle.Render("No switch-in events with a following commit yet."))
		return nil
	}
	fmt.Fprintln(out, theme.TitleStyle.Render("Time to first commit after switch-in"))
	fmt.Fprintln(out, ui.LatencyTable(rows))
	return nil
}
