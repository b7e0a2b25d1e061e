package ports

import (
	"context"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

// The collectors below never return errors: failures and timeouts come back
// as degraded outcomes carrying a placeholder value.

// GitInspector reads working-copy state
type GitInspector interface {
	Status(ctx context.Context, repoPath string) domain.Outcome[domain.GitStatus]
}

// TerminalCapturer reads recent terminal output for a repository
type TerminalCapturer interface {
	Capture(ctx context.Context, repoID string) domain.Outcome[domain.TerminalCapture]
}

// TaskReader finds the task currently in progress. A nil value means none.
type TaskReader interface {
	ActiveTask(ctx context.Context, repoPath string) domain.Outcome[*domain.Task]
}

// SitrepGenerator produces the AI situation report for a snapshot
type SitrepGenerator interface {
	Generate(ctx context.Context, req domain.SitrepRequest) domain.Outcome[string]
}

// EditorLauncher opens a repository in an editor without waiting for it
type EditorLauncher interface {
	Launch(path string) error
}
