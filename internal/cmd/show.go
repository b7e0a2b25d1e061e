package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/theme"
	"github.com/ImmortalDemonGod/prime-directive/internal/ui"
)

// ShowCmd prints the latest SITREP of a repository
type ShowCmd struct {
	Repo string `arg:"" help:"Repository id"`
}

// Run executes the show command
func (s *ShowCmd) Run(cli *CLI) error {
	container, err := cli.Container()
	if err != nil {
		return err
	}
	repo, err := container.Registry.Lookup(s.Repo)
	if err != nil {
		return err
	}

	snap, err := container.Store.LatestSnapshot(context.Background(), repo.ID)
	if err != nil && !errors.Is(err, domain.ErrSnapshotNotFound) {
		return err
	}
	fmt.Fprint(cli.Stdout(), ui.RenderSitrep(repo.ID, snap, renderWidth()))
	return nil
}

// HistoryCmd lists stored snapshots, newest first
type HistoryCmd struct {
	Limit int    `help:"Maximum number of snapshots to show (0 = all)" default:"10" short:"n"`
	Repo  string `arg:"" help:"Repository id"`
}

// Run executes the history command
func (h *HistoryCmd) Run(cli *CLI) error {
	container, err := cli.Container()
	if err != nil {
		return err
	}
	repo, err := container.Registry.Lookup(h.Repo)
	if err != nil {
		return err
	}

	snaps, err := container.Store.ListSnapshots(context.Background(), repo.ID, h.Limit)
	if err != nil {
		return err
	}

	out := cli.Stdout()
	if len(snaps) == 0 {
		fmt.Fprintln(out, theme.MutedStyle.Render(ui.NoSnapshotText))
		return nil
	}
	fmt.Fprintln(out, theme.TitleStyle.Render("History: "+repo.ID))
	fmt.Fprintln(out, ui.HistoryTable(snaps))
	return nil
}
