package ai

import (
	"fmt"
	"strings"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

// SystemPrompt frames the model as a chief of staff restoring context
const SystemPrompt = "You are a Chief of Staff for a senior engineer. " +
	"Your job is to preserve and surface the human strategic context so the engineer can resume instantly. " +
	"Prioritize (in this order): Human Objective, Human Blocker, Human Notes (Brain Dump), Human Next Step. " +
	"Treat git state and terminal logs as supporting evidence only. " +
	"Do not discard or compress away the Blocker or Notes; explicitly mention them. " +
	"Write a compact SITREP that is decision- and next-action-oriented: " +
	"(1) What we were trying to achieve, (2) what failed / key uncertainty, (3) what to do next. " +
	"Keep it brief (<=120 words) and include an explicit NEXT STEP."

// BuildPrompt renders the user message for a SITREP request
func BuildPrompt(req domain.SitrepRequest) string {
	taskInfo := "None"
	if req.Task != nil {
		taskInfo = fmt.Sprintf("ID: %s\nTitle: %s\nDetails: %s", req.Task.ID, req.Task.Title, orNone(req.Task.Description))
	}

	humanInfo := "None"
	if !req.Human.IsZero() {
		humanInfo = fmt.Sprintf("Objective: %s\nBlocker: %s\nNext Step: %s\nNotes: %s",
			orNone(req.Human.Objective),
			orNone(req.Human.Blocker),
			orNone(req.Human.NextStep),
			orNone(req.Human.Note),
		)
	}

	var b strings.Builder
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Repository: %s\n", req.RepositoryID)
	fmt.Fprintf(&b, "- Human Context:\n%s\n", humanInfo)
	fmt.Fprintf(&b, "- Active Task:\n%s\n", taskInfo)
	fmt.Fprintf(&b, "- Git State:\n%s\n", req.Git.Summary())
	fmt.Fprintf(&b, "- Recent Terminal Logs:\n%s\n", req.Terminal.Output)
	b.WriteString("\nGenerate a SITREP.")
	return b.String()
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
