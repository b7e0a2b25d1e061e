package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// Degraded collaborator names recorded on snapshots
const (
	CollaboratorAI       = "ai"
	CollaboratorGit      = "git"
	CollaboratorTask     = "task"
	CollaboratorTerminal = "terminal"
)

// CollectorTimeouts bounds each collaborator independently
type CollectorTimeouts struct {
	AI       time.Duration
	Git      time.Duration
	Task     time.Duration
	Terminal time.Duration
}

// SnapshotCollector assembles one ContextSnapshot from the git, terminal,
// task and AI collaborators. It never persists and never fails: a slow or
// broken collaborator degrades only its own field.
type SnapshotCollector struct {
	git      ports.GitInspector
	now      func() time.Time
	pending  sync.WaitGroup
	sitrep   ports.SitrepGenerator
	tasks    ports.TaskReader
	terminal ports.TerminalCapturer
	timeouts CollectorTimeouts
}

// NewSnapshotCollector creates a new SnapshotCollector
func NewSnapshotCollector(
	git ports.GitInspector,
	terminal ports.TerminalCapturer,
	tasks ports.TaskReader,
	sitrep ports.SitrepGenerator,
	timeouts CollectorTimeouts,
) *SnapshotCollector {
	return &SnapshotCollector{
		git:      git,
		now:      time.Now,
		sitrep:   sitrep,
		tasks:    tasks,
		terminal: terminal,
		timeouts: timeouts,
	}
}

// Collect captures the repository's state. Git, terminal and task run
// concurrently; the AI summary runs after them because it summarizes
// their output.
func (c *SnapshotCollector) Collect(ctx context.Context, repo domain.Repository, human domain.HumanContext) *domain.ContextSnapshot {
	logging.Logger.Info("Collecting snapshot", "repo_id", repo.ID, "path", repo.Path)
	started := c.now().UTC()

	var (
		gitOut  domain.Outcome[domain.GitStatus]
		termOut domain.Outcome[domain.TerminalCapture]
		taskOut domain.Outcome[*domain.Task]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		gitOut = within(gctx, &c.pending, c.timeouts.Git,
			domain.GitStatus{Branch: domain.BranchTimeout, DiffStat: "Git command timed out"},
			func(ctx context.Context) domain.Outcome[domain.GitStatus] { return c.git.Status(ctx, repo.Path) })
		return nil
	})
	g.Go(func() error {
		termOut = within(gctx, &c.pending, c.timeouts.Terminal,
			domain.TerminalCapture{LastCommand: "unknown", Output: "Terminal capture timed out."},
			func(ctx context.Context) domain.Outcome[domain.TerminalCapture] { return c.terminal.Capture(ctx, repo.ID) })
		return nil
	})
	g.Go(func() error {
		taskOut = within(gctx, &c.pending, c.timeouts.Task, nil,
			func(ctx context.Context) domain.Outcome[*domain.Task] { return c.tasks.ActiveTask(ctx, repo.Path) })
		return nil
	})
	_ = g.Wait()

	sitrepOut := within(ctx, &c.pending, c.timeouts.AI, "Error generating SITREP: timed out",
		func(ctx context.Context) domain.Outcome[string] {
			return c.sitrep.Generate(ctx, domain.SitrepRequest{
				Git:          gitOut.Value,
				Human:        human,
				RepositoryID: repo.ID,
				Task:         taskOut.Value,
				Terminal:     termOut.Value,
			})
		})

	snap := &domain.ContextSnapshot{
		AISummary:           sitrepOut.Value,
		GitSummary:          gitOut.Value.Summary(),
		Human:               human,
		RepositoryID:        repo.ID,
		TaskSummary:         taskOut.Value.Summary(),
		TerminalLastCommand: termOut.Value.LastCommand,
		TerminalSummary:     termOut.Value.Output,
		Timestamp:           started,
	}
	for _, d := range []struct {
		name     string
		degraded bool
		reason   string
	}{
		{CollaboratorGit, gitOut.Degraded, gitOut.Reason},
		{CollaboratorTerminal, termOut.Degraded, termOut.Reason},
		{CollaboratorTask, taskOut.Degraded, taskOut.Reason},
		{CollaboratorAI, sitrepOut.Degraded, sitrepOut.Reason},
	} {
		if d.degraded {
			snap.Degraded = append(snap.Degraded, d.name)
			logging.Logger.Debug("Collaborator degraded", "repo_id", repo.ID, "collaborator", d.name, "reason", d.reason)
		}
	}

	return snap
}

// Wait blocks until collaborators abandoned by a timeout have returned, or
// until timeout elapses. It reports whether they all finished. Callers run
// it before closing the store those collaborators may still write to.
func (c *SnapshotCollector) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		logging.Logger.Warn("Abandoned collaborators still running", "waited", timeout)
		return false
	}
}

// within runs fn with its own deadline and substitutes fallback if fn does
// not return in time. fn keeps running in the background, tracked by
// pending, until it notices its context is done.
func within[T any](ctx context.Context, pending *sync.WaitGroup, timeout time.Duration, fallback T, fn func(context.Context) domain.Outcome[T]) domain.Outcome[T] {
	if timeout <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan domain.Outcome[T], 1)
	pending.Add(1)
	go func() {
		defer pending.Done()
		done <- fn(ctx)
	}()

	select {
	case out := <-done:
		return out
	case <-ctx.Done():
		return domain.Degrade(fallback, "timed out after "+timeout.String())
	}
}
