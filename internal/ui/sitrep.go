package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

// NoSnapshotText is shown when a repository was never frozen
const NoSnapshotText = "No previous snapshot found."

const defaultWrap = 80

// SitrepMarkdown formats a snapshot as the markdown SITREP
func SitrepMarkdown(repoID string, snap *domain.ContextSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# SITREP: %s\n\n", repoID)
	if snap == nil {
		b.WriteString("_" + NoSnapshotText + "_\n")
		return b.String()
	}

	fmt.Fprintf(&b, "_Frozen %s (%s)_\n\n", snap.Timestamp.Local().Format("2006-01-02 15:04"), since(snap.Timestamp))

	human := []struct{ label, value string }{
		{"Objective", snap.Human.Objective},
		{"Blocker", snap.Human.Blocker},
		{"Next step", snap.Human.NextStep},
		{"Note", snap.Human.Note},
	}
	var lines []string
	for _, h := range human {
		if h.value != "" {
			lines = append(lines, fmt.Sprintf("- **%s:** %s", h.label, h.value))
		}
	}
	if len(lines) > 0 {
		b.WriteString("## Human context\n\n" + strings.Join(lines, "\n") + "\n\n")
	}

	if snap.AISummary != "" {
		b.WriteString("## Summary\n\n" + snap.AISummary + "\n\n")
	}
	if snap.TaskSummary != "" {
		b.WriteString("## Active task\n\n" + snap.TaskSummary + "\n\n")
	}
	if snap.GitSummary != "" {
		b.WriteString("## Git\n\n```\n" + snap.GitSummary + "\n```\n\n")
	}
	if snap.TerminalLastCommand != "" && snap.TerminalLastCommand != "unknown" {
		b.WriteString("## Last command\n\n`" + snap.TerminalLastCommand + "`\n")
	}
	return b.String()
}

// RenderSitrep renders the SITREP for the terminal. width <= 0 uses 80.
// If glamour cannot render, the raw markdown is returned.
func RenderSitrep(repoID string, snap *domain.ContextSnapshot, width int) string {
	md := SitrepMarkdown(repoID, snap)
	if width <= 0 {
		width = defaultWrap
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func since(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
