package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ImmortalDemonGod/prime-directive/internal/adapters/storage"
	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	portsmocks "github.com/ImmortalDemonGod/prime-directive/internal/ports/mocks"
)

var dirtyAlpha = domain.GitStatus{
	Branch:   "main",
	DiffStat: " main.go | 2 +-\n 1 file changed",
	Dirty:    true,
	Files:    []string{"main.go"},
}

var testTimeouts = CollectorTimeouts{
	AI:       time.Second,
	Git:      time.Second,
	Task:     time.Second,
	Terminal: time.Second,
}

func newStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "prime.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// collaborators returns mocks that answer every call successfully
func collaborators(t *testing.T) (*portsmocks.MockGitInspector, *portsmocks.MockTerminalCapturer, *portsmocks.MockTaskReader, *portsmocks.MockSitrepGenerator) {
	t.Helper()

	git := portsmocks.NewMockGitInspector(t)
	git.EXPECT().Status(mock.Anything, mock.Anything).Return(domain.Ok(dirtyAlpha)).Maybe()

	terminal := portsmocks.NewMockTerminalCapturer(t)
	terminal.EXPECT().Capture(mock.Anything, mock.Anything).
		Return(domain.Ok(domain.TerminalCapture{LastCommand: "go test ./...", Output: "$ go test ./...\nok"})).Maybe()

	tasks := portsmocks.NewMockTaskReader(t)
	tasks.EXPECT().ActiveTask(mock.Anything, mock.Anything).
		Return(domain.Ok(&domain.Task{ID: "7", Priority: "high", Status: "in-progress", Title: "Wire the daemon"})).Maybe()

	sitrep := portsmocks.NewMockSitrepGenerator(t)
	sitrep.EXPECT().Generate(mock.Anything, mock.Anything).Return(domain.Ok("Fix the flaky test next.")).Maybe()

	return git, terminal, tasks, sitrep
}

func newCollector(t *testing.T) *SnapshotCollector {
	t.Helper()
	git, terminal, tasks, sitrep := collaborators(t)
	return NewSnapshotCollector(git, terminal, tasks, sitrep, testTimeouts)
}

func twoRepos(t *testing.T) (domain.Repository, domain.Repository, *domain.Registry) {
	t.Helper()
	alpha := domain.Repository{ID: "alpha", Path: filepath.Join(t.TempDir(), "alpha"), Priority: 5}
	beta := domain.Repository{ID: "beta", Path: filepath.Join(t.TempDir(), "beta"), Priority: 3}
	registry, err := domain.NewRegistry([]domain.Repository{alpha, beta})
	require.NoError(t, err)
	return alpha, beta, registry
}

func countSnapshots(t *testing.T, store *storage.SQLiteStore, repoID string) int {
	t.Helper()
	snaps, err := store.ListSnapshots(context.Background(), repoID, 0)
	require.NoError(t, err)
	return len(snaps)
}

func countEvents(t *testing.T, store *storage.SQLiteStore, filter domain.EventFilter) int {
	t.Helper()
	events, err := store.ListEvents(context.Background(), filter)
	require.NoError(t, err)
	return len(events)
}
