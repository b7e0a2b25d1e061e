package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

func TestFreeze_PersistsSnapshotForUnsyncedRepository(t *testing.T) {
	store := newStore(t)
	svc := NewFreezeService(newCollector(t), store)
	repo := domain.Repository{ID: "alpha", Path: "/tmp/alpha"}

	snap, err := svc.Freeze(context.Background(), repo, domain.HumanContext{NextStep: "write the test"})
	require.NoError(t, err)
	assert.NotZero(t, snap.ID)

	latest, err := store.LatestSnapshot(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, snap.ID, latest.ID)
	assert.Equal(t, "write the test", latest.Human.NextStep)
	assert.Equal(t, snap.GitSummary, latest.GitSummary)
}

type failingSaveStore struct {
	FreezeStore
}

func (failingSaveStore) SaveSnapshot(ctx context.Context, snap *domain.ContextSnapshot) error {
	return errors.New("disk I/O error")
}

func TestFreeze_ReturnsSnapshotWhenSaveFails(t *testing.T) {
	svc := NewFreezeService(newCollector(t), failingSaveStore{FreezeStore: newStore(t)})

	snap, err := svc.Freeze(context.Background(), domain.Repository{ID: "alpha", Path: "/tmp/alpha"}, domain.HumanContext{})

	require.Error(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "Fix the flaky test next.", snap.AISummary)
}
