package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ImmortalDemonGod/prime-directive/internal/theme"
	"github.com/ImmortalDemonGod/prime-directive/internal/ui"
)

// FreezeCmd captures and stores one snapshot
type FreezeCmd struct {
	HumanFlags `embed:""`
	Repo       string `arg:"" help:"Repository id to freeze"`
}

// Run executes the freeze command
func (f *FreezeCmd) Run(cli *CLI) error {
	container, err := cli.Container()
	if err != nil {
		return err
	}
	repo, err := container.Registry.Lookup(f.Repo)
	if err != nil {
		return err
	}

	human, err := f.HumanContext()
	if err != nil {
		return err
	}

	out := cli.Stdout()
	snap, err := container.FreezeService.Freeze(context.Background(), repo, human)
	if snap != nil && len(snap.Degraded) > 0 {
		fmt.Fprintln(out, theme.WarningStyle.Render("! degraded: "+strings.Join(snap.Degraded, ", ")))
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, theme.OKStyle.Render(fmt.Sprintf("✓ Snapshot #%d saved for %s", snap.ID, repo.ID)))
	fmt.Fprint(out, ui.RenderSitrep(repo.ID, snap, renderWidth()))
	return nil
}
