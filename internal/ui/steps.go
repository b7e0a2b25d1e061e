package ui

import (
	"fmt"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/theme"
)

var stepLabels = map[domain.Step]string{
	domain.StepDetect:         "Detect current repository",
	domain.StepFreeze:         "Freeze current context",
	domain.StepLogEvent:       "Record switch-in",
	domain.StepPrepareSession: "Prepare session",
	domain.StepLaunchEditor:   "Launch editor",
	domain.StepShowSnapshot:   "Load last snapshot",
	domain.StepHandover:       "Hand over terminal",
}

// StepLine renders one switch progress line
func StepLine(r domain.StepReport) string {
	var icon string
	switch r.Status {
	case domain.StepOK:
		icon = theme.OKStyle.Render("✓")
	case domain.StepWarning:
		icon = theme.WarningStyle.Render("!")
	case domain.StepFailed:
		icon = theme.FailedStyle.Render("✗")
	default:
		icon = theme.SkippedStyle.Render("-")
	}

	label, ok := stepLabels[r.Step]
	if !ok {
		label = string(r.Step)
	}
	line := fmt.Sprintf("%s %s", icon, theme.NormalStyle.Render(label))
	if r.Detail != "" {
		line += " " + theme.MutedStyle.Render(r.Detail)
	}
	if r.Err != nil {
		line += ": " + theme.WarningStyle.Render(r.Err.Error())
	}
	return line
}

// Warping renders the banner printed before the target's SITREP
func Warping(repoID string) string {
	return theme.WarpingStyle.Render(">>> WARPING TO " + repoID + " <<<")
}
