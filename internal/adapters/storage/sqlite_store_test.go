package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "prime.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedRepos(t *testing.T, store *SQLiteStore, ids ...string) {
	t.Helper()
	repos := make([]domain.Repository, len(ids))
	for i, id := range ids {
		repos[i] = domain.Repository{ActiveBranch: "main", ID: id, Path: "/tmp/" + id, Priority: i}
	}
	require.NoError(t, store.SyncRepositories(context.Background(), repos))
}

func TestSaveSnapshot_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	seedRepos(t, store, "alpha")
	ctx := context.Background()

	snap := &domain.ContextSnapshot{
		AISummary:           "Working on parser",
		GitSummary:          "Branch: main\nDirty: true",
		Human:               domain.HumanContext{Blocker: "flaky test", Objective: "ship parser"},
		RepositoryID:        "alpha",
		TaskSummary:         "Task 7: parser [high]",
		TerminalLastCommand: "go test ./...",
		TerminalSummary:     "$ go test ./...\nok",
		Timestamp:           time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveSnapshot(ctx, snap))
	assert.NotZero(t, snap.ID)

	got, err := store.LatestSnapshot(ctx, "alpha")
	require.NoError(t, err)

	if diff := cmp.Diff(*snap, *got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveSnapshot_DefaultsTimestamp(t *testing.T) {
	store := newTestStore(t)
	seedRepos(t, store, "alpha")

	snap := &domain.ContextSnapshot{RepositoryID: "alpha"}
	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, store.SaveSnapshot(context.Background(), snap))

	assert.True(t, snap.Timestamp.After(before))
	assert.Equal(t, time.UTC, snap.Timestamp.Location())
}

func TestSaveSnapshot_RejectsUnknownRepository(t *testing.T) {
	store := newTestStore(t)
	seedRepos(t, store, "alpha")

	err := store.SaveSnapshot(context.Background(), &domain.ContextSnapshot{RepositoryID: "ghost"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestLatestSnapshot_OrdersByTimestampThenID(t *testing.T) {
	store := newTestStore(t)
	seedRepos(t, store, "alpha", "beta")
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, ts := range []time.Time{base.Add(time.Hour), base, base.Add(time.Hour)} {
		snap := &domain.ContextSnapshot{
			AISummary:    []string{"first", "older", "tie-later-id"}[i],
			RepositoryID: "alpha",
			Timestamp:    ts,
		}
		require.NoError(t, store.SaveSnapshot(ctx, snap))
	}
	require.NoError(t, store.SaveSnapshot(ctx, &domain.ContextSnapshot{
		AISummary: "other repo", RepositoryID: "beta", Timestamp: base.Add(48 * time.Hour),
	}))

	latest, err := store.LatestSnapshot(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "tie-later-id", latest.AISummary)

	history, err := store.ListSnapshots(ctx, "alpha", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "tie-later-id", history[0].AISummary)
	assert.Equal(t, "first", history[1].AISummary)
}

func TestLatestSnapshot_NotFound(t *testing.T) {
	store := newTestStore(t)
	seedRepos(t, store, "alpha")

	_, err := store.LatestSnapshot(context.Background(), "alpha")

	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestSyncRepositories_Upserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SyncRepositories(ctx, []domain.Repository{{ID: "alpha", Path: "/a", Priority: 1, ActiveBranch: "main"}}))
	require.NoError(t, store.SyncRepositories(ctx, []domain.Repository{{ID: "alpha", Path: "/moved", Priority: 9, ActiveBranch: "dev"}}))

	var models []RepositoryModel
	require.NoError(t, store.db.Find(&models).Error)
	require.Len(t, models, 1)
	assert.Equal(t, "/moved", models[0].Path)
	assert.Equal(t, 9, models[0].Priority)
	assert.Equal(t, "dev", models[0].ActiveBranch)
}

func TestListEvents_Filters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	events := []domain.Event{
		{Kind: domain.EventSwitchIn, RepositoryID: "alpha", Timestamp: base},
		{Kind: domain.EventCommit, RepositoryID: "alpha", Timestamp: base.Add(10 * time.Minute)},
		{Kind: domain.EventSwitchIn, RepositoryID: "beta", Timestamp: base.Add(20 * time.Minute)},
		{Kind: domain.EventSwitchIn, RepositoryID: "alpha", Timestamp: base.Add(30 * time.Minute)},
	}
	for _, ev := range events {
		id, err := store.LogEvent(ctx, ev)
		require.NoError(t, err)
		assert.NotZero(t, id)
	}

	all, err := store.ListEvents(ctx, domain.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	alphaSwitches, err := store.ListEvents(ctx, domain.EventFilter{Kind: domain.EventSwitchIn, RepositoryID: "alpha"})
	require.NoError(t, err)
	require.Len(t, alphaSwitches, 2)
	assert.True(t, alphaSwitches[0].Timestamp.Before(alphaSwitches[1].Timestamp))

	recent, err := store.ListEvents(ctx, domain.EventFilter{Since: base.Add(15 * time.Minute)})
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestUsage_Aggregates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	records := []domain.AIUsage{
		{CostUSD: 0.01, InputTokens: 100, OutputTokens: 50, Model: "gpt-4o-mini", Provider: "openai", Success: true, Timestamp: now},
		{CostUSD: 0.02, InputTokens: 200, OutputTokens: 100, Model: "gpt-4o-mini", Provider: "openai", Success: false, Timestamp: now},
		{InputTokens: 10, OutputTokens: 5, Model: "qwen2.5-coder", Provider: "ollama", Success: true, Timestamp: now},
		{CostUSD: 5, Model: "gpt-4o-mini", Provider: "openai", Success: true, Timestamp: now.AddDate(0, -2, 0)},
	}
	for _, u := range records {
		require.NoError(t, store.RecordUsage(ctx, u))
	}

	since := now.Add(-time.Hour)
	openai, err := store.UsageSince(ctx, "openai", since)
	require.NoError(t, err)
	assert.Equal(t, 2, openai.Calls)
	assert.Equal(t, 450, openai.Tokens)
	assert.Equal(t, 1, openai.Failures)
	assert.InDelta(t, 0.03, openai.CostUSD, 1e-9)

	none, err := store.UsageSince(ctx, "anthropic", since)
	require.NoError(t, err)
	assert.Equal(t, domain.UsageSummary{Provider: "anthropic"}, none)

	summaries, err := store.SummarizeUsage(ctx, since)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "ollama", summaries[0].Provider)
	assert.Equal(t, "openai", summaries[1].Provider)
}

func TestClose_Idempotent(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "prime.db"))
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
