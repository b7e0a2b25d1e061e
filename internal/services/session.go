package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/handover"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

const (
	hasSessionTimeout   = 2 * time.Second
	newSessionTimeout   = 5 * time.Second
	switchClientTimeout = 2 * time.Second
)

// SessionPreparer idempotently ensures a repository's tmux session exists
type SessionPreparer struct {
	getenv   func(string) string
	shellCmd []string
	tmux     ports.TmuxClient
}

// NewSessionPreparer creates a SessionPreparer. An empty shellCmd selects
// $SHELL, then bash.
func NewSessionPreparer(tmux ports.TmuxClient, shellCmd []string) *SessionPreparer {
	return &SessionPreparer{
		getenv:   os.Getenv,
		shellCmd: shellCmd,
		tmux:     tmux,
	}
}

// EnsureResult describes what EnsureSession did
type EnsureResult struct {
	Attached bool
	Created  bool
	Name     string
	Switched bool
}

// EnsureSession creates the repository's session if missing. With attach,
// it then switches the current tmux client (inside tmux) or replaces this
// process with an attached client (outside tmux).
func (p *SessionPreparer) EnsureSession(ctx context.Context, repo domain.Repository, attach bool) (EnsureResult, error) {
	res := EnsureResult{Name: handover.SessionName(repo.ID)}

	if err := p.tmux.Available(); err != nil {
		return res, err
	}

	hctx, cancel := context.WithTimeout(ctx, hasSessionTimeout)
	exists, err := p.tmux.HasSession(hctx, res.Name)
	cancel()
	if err != nil {
		return res, fmt.Errorf("%w %s: %v", ports.ErrSessionCreate, res.Name, err)
	}

	if !exists {
		command := p.ShellCommand()
		logging.Logger.Info("Creating session", "name", res.Name, "path", repo.Path, "command", command)

		nctx, cancel := context.WithTimeout(ctx, newSessionTimeout)
		err := p.tmux.NewSession(nctx, res.Name, repo.Path, command)
		cancel()
		if err != nil {
			if errors.Is(err, ports.ErrSessionCreate) {
				return res, err
			}
			return res, fmt.Errorf("%w %s: %v", ports.ErrSessionCreate, res.Name, err)
		}
		res.Created = true
	} else {
		logging.Logger.Debug("Session already exists", "name", res.Name)
	}

	if !attach {
		return res, nil
	}

	if p.tmux.InsideTmux() {
		sctx, cancel := context.WithTimeout(ctx, switchClientTimeout)
		defer cancel()
		if err := p.tmux.SwitchClient(sctx, res.Name); err != nil {
			return res, err
		}
		res.Switched = true
		return res, nil
	}

	if err := p.tmux.AttachReplace(res.Name); err != nil {
		return res, err
	}
	res.Attached = true
	return res, nil
}

// ShellCommand returns the command a new session runs
func (p *SessionPreparer) ShellCommand() []string {
	if len(p.shellCmd) > 0 {
		return append([]string(nil), p.shellCmd...)
	}
	if shell := p.getenv("SHELL"); shell != "" {
		return []string{shell}
	}
	return []string{"bash"}
}
