package ports

import (
	"context"
	"errors"
)

var (
	ErrSessionCreate    = errors.New("failed to create tmux session")
	ErrTmuxNotInstalled = errors.New("tmux not installed")
)

// TmuxSessionLifecycle checks for and creates sessions
type TmuxSessionLifecycle interface {
	// HasSession reports whether a session exists. A missing session is
	// (false, nil); an error means tmux itself could not be run.
	HasSession(ctx context.Context, name string) (bool, error)
	// NewSession creates a detached session rooted at dir running command.
	// Every element of command is passed as a discrete argument.
	NewSession(ctx context.Context, name, dir string, command []string) error
}

// TmuxSessionAttacher moves a terminal client onto a session
type TmuxSessionAttacher interface {
	// AttachReplace replaces the current process with tmux attach-session.
	// It only returns on failure.
	AttachReplace(name string) error
	InsideTmux() bool
	SwitchClient(ctx context.Context, name string) error
}

// TmuxPaneController reads pane contents
type TmuxPaneController interface {
	// CapturePane returns scrollback from startLine (negative = history).
	// An empty target captures the current pane.
	CapturePane(ctx context.Context, target string, startLine int) (string, error)
}

// TmuxClient is the composite tmux interface
type TmuxClient interface {
	TmuxPaneController
	TmuxSessionAttacher
	TmuxSessionLifecycle
	// Available returns ErrTmuxNotInstalled when the binary is not on PATH
	Available() error
}
