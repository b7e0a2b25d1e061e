package cmd

import (
	"context"
	"fmt"

	"github.com/ImmortalDemonGod/prime-directive/internal/ui"
)

// UsageCmd shows month-to-date AI usage against the budget
type UsageCmd struct{}

// Run executes the usage command
func (u *UsageCmd) Run(cli *CLI) error {
	container, err := cli.Container()
	if err != nil {
		return err
	}

	report, err := container.UsageService.MonthToDate(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.Stdout(), ui.UsageTable(report))
	return nil
}
