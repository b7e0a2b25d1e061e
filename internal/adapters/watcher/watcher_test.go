package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const reflogEntry = "0000000000000000000000000000000000000000 1111111111111111111111111111111111111111 Dev <dev@example.com> 1760000000 +0000\tcommit (initial): first\n"

func makeRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "logs", "HEAD"), []byte(reflogEntry), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "left-pad"), 0o755))
	return dir
}

func waitFor(t *testing.T, events <-chan domain.Activity, kind domain.ActivityKind) domain.Activity {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case a, ok := <-events:
			require.True(t, ok, "events closed")
			if a.Kind == kind {
				return a
			}
		case <-deadline:
			t.Fatalf("no %s activity observed", kind)
		}
	}
}

func startWatcher(t *testing.T, repos []domain.Repository) (*Watcher, context.CancelFunc) {
	t.Helper()
	w, err := New(repos)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return w, cancel
}

func TestWatcher_ReportsWorktreeWrites(t *testing.T) {
	dir := makeRepo(t)
	w, _ := startWatcher(t, []domain.Repository{{ID: "alpha", Path: dir}})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.go"), []byte("package main\n"), 0o644))

	a := waitFor(t, w.Events(), domain.ActivityWrite)
	assert.Equal(t, "alpha", a.RepositoryID)
}

func TestWatcher_ReportsCommits(t *testing.T) {
	dir := makeRepo(t)
	w, _ := startWatcher(t, []domain.Repository{{ID: "alpha", Path: dir}})

	f, err := os.OpenFile(filepath.Join(dir, ".git", "logs", "HEAD"), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("1111111111111111111111111111111111111111 2222222222222222222222222222222222222222 Dev <dev@example.com> 1760000100 +0000\tcommit: add parser\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	a := waitFor(t, w.Events(), domain.ActivityCommit)
	assert.Equal(t, "alpha", a.RepositoryID)
}

func TestWatcher_SkipsMissingRepositories(t *testing.T) {
	dir := makeRepo(t)
	w, _ := startWatcher(t, []domain.Repository{
		{ID: "alpha", Path: dir},
		{ID: "ghost", Path: filepath.Join(dir, "does-not-exist")},
	})

	assert.Equal(t, []string{"alpha"}, w.Watching())
}

func TestWatcher_ClosesEventsOnCancel(t *testing.T) {
	w, err := New([]domain.Repository{{ID: "alpha", Path: makeRepo(t)}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	cancel()

	select {
	case _, ok := <-w.Events():
		for ok {
			_, ok = <-w.Events()
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestIsCommitEntry(t *testing.T) {
	tests := []struct {
		line   string
		commit bool
	}{
		{"a b Dev <d@e> 1 +0000\tcommit: add parser", true},
		{"a b Dev <d@e> 1 +0000\tcommit (amend): fix", true},
		{"a b Dev <d@e> 1 +0000\tcheckout: moving from main to dev", false},
		{"a b Dev <d@e> 1 +0000\treset: moving to HEAD~1", false},
		{"no tab here", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, ok := IsCommitEntry(tt.line)
			assert.Equal(t, tt.commit, ok)
		})
	}
}
