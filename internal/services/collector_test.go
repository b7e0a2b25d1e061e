package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	portsmocks "github.com/ImmortalDemonGod/prime-directive/internal/ports/mocks"
)

func TestCollect_AssemblesAllFields(t *testing.T) {
	collector := newCollector(t)
	repo := domain.Repository{ID: "alpha", Path: "/tmp/alpha"}
	human := domain.HumanContext{Note: "halfway through the refactor", Objective: "ship v1"}

	snap := collector.Collect(context.Background(), repo, human)

	assert.Equal(t, "alpha", snap.RepositoryID)
	assert.Equal(t, dirtyAlpha.Summary(), snap.GitSummary)
	assert.Contains(t, snap.GitSummary, "Dirty: true")
	assert.Equal(t, "$ go test ./...\nok", snap.TerminalSummary)
	assert.Equal(t, "go test ./...", snap.TerminalLastCommand)
	assert.Equal(t, "Task 7: Wire the daemon [high]", snap.TaskSummary)
	assert.Equal(t, "Fix the flaky test next.", snap.AISummary)
	assert.Equal(t, human, snap.Human)
	assert.Empty(t, snap.Degraded)
	assert.False(t, snap.Timestamp.IsZero())
}

func TestCollect_PassesCollectedFactsToSitrep(t *testing.T) {
	git, terminal, tasks, _ := collaborators(t)
	sitrep := portsmocks.NewMockSitrepGenerator(t)
	sitrep.EXPECT().Generate(mock.Anything, mock.MatchedBy(func(req domain.SitrepRequest) bool {
		return req.RepositoryID == "alpha" &&
			req.Git.Branch == "main" &&
			req.Task != nil && req.Task.ID == "7" &&
			req.Terminal.LastCommand == "go test ./..." &&
			req.Human.Blocker == "flaky CI"
	})).Return(domain.Ok("ok"))

	collector := NewSnapshotCollector(git, terminal, tasks, sitrep, testTimeouts)
	snap := collector.Collect(context.Background(), domain.Repository{ID: "alpha", Path: "/tmp/alpha"}, domain.HumanContext{Blocker: "flaky CI"})

	assert.Equal(t, "ok", snap.AISummary)
}

func TestCollect_AITimeoutDegradesOnlySummary(t *testing.T) {
	git, terminal, tasks, _ := collaborators(t)
	sitrep := portsmocks.NewMockSitrepGenerator(t)
	sitrep.EXPECT().Generate(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, req domain.SitrepRequest) domain.Outcome[string] {
			<-ctx.Done()
			return domain.Degrade("Error generating SITREP: "+ctx.Err().Error(), ctx.Err().Error())
		})

	timeouts := testTimeouts
	timeouts.AI = 20 * time.Millisecond
	collector := NewSnapshotCollector(git, terminal, tasks, sitrep, timeouts)

	start := time.Now()
	snap := collector.Collect(context.Background(), domain.Repository{ID: "alpha", Path: "/tmp/alpha"}, domain.HumanContext{})

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, len(snap.AISummary) > 0)
	assert.Contains(t, snap.AISummary, "Error generating SITREP:")
	assert.Equal(t, []string{CollaboratorAI}, snap.Degraded)
	assert.Equal(t, dirtyAlpha.Summary(), snap.GitSummary)
	assert.Equal(t, "go test ./...", snap.TerminalLastCommand)
	assert.NotEmpty(t, snap.TaskSummary)
}

func TestCollect_WaitCoversAbandonedSitrep(t *testing.T) {
	git, terminal, tasks, _ := collaborators(t)
	sitrep := portsmocks.NewMockSitrepGenerator(t)
	var recorded atomic.Bool
	sitrep.EXPECT().Generate(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, req domain.SitrepRequest) domain.Outcome[string] {
			<-ctx.Done()
			time.Sleep(50 * time.Millisecond) // usage write after the deadline
			recorded.Store(true)
			return domain.Ok("late")
		})

	timeouts := testTimeouts
	timeouts.AI = 20 * time.Millisecond
	collector := NewSnapshotCollector(git, terminal, tasks, sitrep, timeouts)

	snap := collector.Collect(context.Background(), domain.Repository{ID: "alpha", Path: "/tmp/alpha"}, domain.HumanContext{})
	assert.Equal(t, []string{CollaboratorAI}, snap.Degraded)
	assert.False(t, recorded.Load())

	assert.True(t, collector.Wait(2*time.Second))
	assert.True(t, recorded.Load())
}

func TestCollect_WaitGivesUpOnStuckCollaborator(t *testing.T) {
	_, terminal, tasks, sitrep := collaborators(t)
	git := portsmocks.NewMockGitInspector(t)
	release := make(chan struct{})
	git.EXPECT().Status(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, path string) domain.Outcome[domain.GitStatus] {
			<-release
			return domain.Ok(domain.GitStatus{Branch: "late"})
		})

	timeouts := testTimeouts
	timeouts.Git = 20 * time.Millisecond
	collector := NewSnapshotCollector(git, terminal, tasks, sitrep, timeouts)
	collector.Collect(context.Background(), domain.Repository{ID: "alpha", Path: "/tmp/alpha"}, domain.HumanContext{})

	assert.False(t, collector.Wait(30*time.Millisecond))

	close(release)
	assert.True(t, collector.Wait(2*time.Second))
}

func TestCollect_HungGitFallsBackToTimeoutSentinel(t *testing.T) {
	_, terminal, tasks, sitrep := collaborators(t)
	git := portsmocks.NewMockGitInspector(t)
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	git.EXPECT().Status(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, path string) domain.Outcome[domain.GitStatus] {
			<-release // ignores cancellation
			return domain.Ok(domain.GitStatus{Branch: "late"})
		})

	timeouts := testTimeouts
	timeouts.Git = 20 * time.Millisecond
	collector := NewSnapshotCollector(git, terminal, tasks, sitrep, timeouts)

	snap := collector.Collect(context.Background(), domain.Repository{ID: "alpha", Path: "/tmp/alpha"}, domain.HumanContext{})

	assert.Contains(t, snap.GitSummary, "Branch: timeout")
	assert.Contains(t, snap.GitSummary, "Git command timed out")
	assert.Equal(t, []string{CollaboratorGit}, snap.Degraded)
	assert.Equal(t, "Fix the flaky test next.", snap.AISummary)
}

func TestCollect_RecordsCollaboratorDegradation(t *testing.T) {
	git, _, _, sitrep := collaborators(t)
	terminal := portsmocks.NewMockTerminalCapturer(t)
	terminal.EXPECT().Capture(mock.Anything, "alpha").
		Return(domain.Degrade(domain.TerminalCapture{LastCommand: "unknown", Output: "tmux not installed."}, "tmux missing"))
	tasks := portsmocks.NewMockTaskReader(t)
	tasks.EXPECT().ActiveTask(mock.Anything, "/tmp/alpha").Return(domain.Ok[*domain.Task](nil))

	collector := NewSnapshotCollector(git, terminal, tasks, sitrep, testTimeouts)
	snap := collector.Collect(context.Background(), domain.Repository{ID: "alpha", Path: "/tmp/alpha"}, domain.HumanContext{})

	assert.Equal(t, "tmux not installed.", snap.TerminalSummary)
	assert.Equal(t, "unknown", snap.TerminalLastCommand)
	assert.Empty(t, snap.TaskSummary)
	assert.Equal(t, []string{CollaboratorTerminal}, snap.Degraded)
}
