package domain

import (
	"fmt"
	"strings"
)

// Branch sentinels used when the real branch cannot be read
const (
	BranchError   = "error"
	BranchTimeout = "timeout"
	BranchUnknown = "unknown"
)

// GitStatus holds the working-copy facts captured during a freeze
type GitStatus struct {
	Branch   string   // Current branch, short hash when detached, or a sentinel
	DiffStat string   // Output of git diff --stat, or an explanation
	Dirty    bool     // Uncommitted changes present
	Files    []string // Paths with uncommitted changes
}

// Summary renders the status in the form stored on snapshots
func (s GitStatus) Summary() string {
	files := "none"
	if len(s.Files) > 0 {
		files = strings.Join(s.Files, ", ")
	}
	diff := strings.TrimSpace(s.DiffStat)
	if diff == "" {
		diff = "(no diff)"
	}
	return fmt.Sprintf("Branch: %s\nDirty: %t\nFiles: %s\nDiff: %s", s.Branch, s.Dirty, files, diff)
}

// TerminalCapture holds the tail of a repository's terminal scrollback
type TerminalCapture struct {
	LastCommand string
	Output      string
}

// Task is the active Task Master task of a repository
type Task struct {
	Description string
	ID          string
	Priority    string
	Status      string
	Title       string
}

// Summary renders the task in the form stored on snapshots
func (t *Task) Summary() string {
	if t == nil {
		return ""
	}
	s := fmt.Sprintf("Task %s: %s", t.ID, t.Title)
	if t.Priority != "" {
		s += " [" + t.Priority + "]"
	}
	if t.Description != "" {
		s += "\n" + t.Description
	}
	return s
}
