package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/handover"
	"github.com/ImmortalDemonGod/prime-directive/internal/services"
	"github.com/ImmortalDemonGod/prime-directive/internal/theme"
	"github.com/ImmortalDemonGod/prime-directive/internal/ui"
)

// SwitchCmd freezes the current repository and prepares the target
type SwitchCmd struct {
	HumanFlags `embed:""`
	NoEditor   bool   `help:"Do not launch the editor for the target repository"`
	Repo       string `arg:"" help:"Repository id to switch to"`
}

// Run executes the switch command. A switch to another repository ends
// with a handover request, which Execute turns into the reserved exit status.
func (s *SwitchCmd) Run(cli *CLI) error {
	container, err := cli.Container()
	if err != nil {
		return err
	}
	if _, err := container.Registry.Lookup(s.Repo); err != nil {
		return err
	}

	human, err := s.HumanContext()
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	out := cli.Stdout()
	res, err := container.SwitchService.Switch(context.Background(), services.SwitchRequest{
		Cwd:          cwd,
		Human:        human,
		LaunchEditor: !s.NoEditor,
		OnStep: func(r domain.StepReport) {
			fmt.Fprintln(out, ui.StepLine(r))
		},
		TargetID: s.Repo,
	})
	if err != nil {
		return err
	}

	if !res.Handover {
		fmt.Fprintln(out, theme.MutedStyle.Render("Already in "+res.Target.ID))
		fmt.Fprint(out, ui.RenderSitrep(res.Target.ID, res.TargetSnapshot, renderWidth()))
		return nil
	}

	fmt.Fprintln(out, ui.Warping(res.Target.ID))
	fmt.Fprint(out, ui.RenderSitrep(res.Target.ID, res.TargetSnapshot, renderWidth()))
	return &handover.Request{RepoID: res.Target.ID}
}
