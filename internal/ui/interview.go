package ui

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

// ErrInterviewAborted is returned when the user cancels the interview
var ErrInterviewAborted = errors.New("interview cancelled")

// InterviewForm builds the form that asks for the human part of a
// snapshot. Fields already set in h are preloaded.
func InterviewForm(h *domain.HumanContext) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Objective").
				Description("What were you trying to achieve?").
				Value(&h.Objective).
				CharLimit(200),
			huh.NewInput().
				Title("Blocker").
				Description("What is uncertain or in the way?").
				Value(&h.Blocker).
				CharLimit(200),
			huh.NewInput().
				Title("Next step").
				Description("The first thing to do when you come back").
				Value(&h.NextStep).
				CharLimit(200),
			huh.NewText().
				Title("Note").
				Value(&h.Note).
				CharLimit(1000),
		),
	)
}

// Interview runs the form on the terminal
func Interview(initial domain.HumanContext) (domain.HumanContext, error) {
	h := initial
	if err := InterviewForm(&h).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return initial, ErrInterviewAborted
		}
		return initial, err
	}
	return h, nil
}
