package ports

import (
	"context"
	"time"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

// RepositorySyncer mirrors the registry into the repository table
type RepositorySyncer interface {
	SyncRepositories(ctx context.Context, repos []domain.Repository) error
}

// SnapshotWriter appends snapshots. Snapshots are never updated.
type SnapshotWriter interface {
	// SaveSnapshot persists snap and sets its ID. The repository row must exist.
	SaveSnapshot(ctx context.Context, snap *domain.ContextSnapshot) error
}

// SnapshotReader reads snapshots
type SnapshotReader interface {
	// LatestSnapshot returns domain.ErrSnapshotNotFound when none exist
	LatestSnapshot(ctx context.Context, repoID string) (*domain.ContextSnapshot, error)
	// ListSnapshots returns newest first; limit <= 0 means no limit
	ListSnapshots(ctx context.Context, repoID string, limit int) ([]domain.ContextSnapshot, error)
}

// EventWriter appends event log entries
type EventWriter interface {
	LogEvent(ctx context.Context, ev domain.Event) (int64, error)
}

// EventReader queries the event log
type EventReader interface {
	ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
}

// UsageRecorder writes and totals AI usage
type UsageRecorder interface {
	RecordUsage(ctx context.Context, usage domain.AIUsage) error
	UsageSince(ctx context.Context, provider string, since time.Time) (domain.UsageSummary, error)
}

// UsageReporter aggregates AI usage across providers
type UsageReporter interface {
	SummarizeUsage(ctx context.Context, since time.Time) ([]domain.UsageSummary, error)
}

// StateStore is the composite interface
type StateStore interface {
	EventReader
	EventWriter
	RepositorySyncer
	SnapshotReader
	SnapshotWriter
	UsageRecorder
	UsageReporter
	Close() error
}
