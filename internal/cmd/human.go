package cmd

import (
	"os"
	"strconv"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/ui"
)

// HumanFlags are the optional, human-authored fields stored with a freeze
type HumanFlags struct {
	Blocker   string `help:"What is blocking progress"`
	Interview bool   `help:"Prompt for the fields interactively"`
	NextStep  string `help:"The next concrete step" name:"next-step"`
	Note      string `help:"Free-form note"`
	Objective string `help:"What you were trying to achieve"`
}

// HumanContext returns the flag values, refined through the interview
// form when --interview is set
func (h HumanFlags) HumanContext() (domain.HumanContext, error) {
	human := domain.HumanContext{
		Blocker:   h.Blocker,
		NextStep:  h.NextStep,
		Note:      h.Note,
		Objective: h.Objective,
	}
	if !h.Interview {
		return human, nil
	}
	return ui.Interview(human)
}

// renderWidth returns the terminal width from $COLUMNS, or 0 for the default
func renderWidth() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return 0
}
