package services

import (
	"context"
	"fmt"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// FreezeStore is the part of the state store a freeze writes to
type FreezeStore interface {
	ports.RepositorySyncer
	ports.SnapshotWriter
}

// FreezeService collects and persists snapshots
type FreezeService struct {
	collector *SnapshotCollector
	store     FreezeStore
}

// NewFreezeService creates a new FreezeService
func NewFreezeService(collector *SnapshotCollector, store FreezeStore) *FreezeService {
	return &FreezeService{
		collector: collector,
		store:     store,
	}
}

// Freeze captures repo and stores the snapshot. The returned snapshot is
// populated even when persisting fails, so callers can still show it.
func (s *FreezeService) Freeze(ctx context.Context, repo domain.Repository, human domain.HumanContext) (*domain.ContextSnapshot, error) {
	snap := s.collector.Collect(ctx, repo, human)

	if err := s.store.SyncRepositories(ctx, []domain.Repository{repo}); err != nil {
		return snap, fmt.Errorf("failed to register repository %s: %w", repo.ID, err)
	}
	if err := s.store.SaveSnapshot(ctx, snap); err != nil {
		return snap, err
	}

	logging.Logger.Info("Snapshot saved",
		"repo_id", repo.ID,
		"snapshot_id", snap.ID,
		"degraded", snap.Degraded,
	)
	return snap, nil
}
