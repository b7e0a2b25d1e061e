package services

import (
	"context"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// KPIService derives the time-to-first-commit metric from the event log
type KPIService struct {
	events ports.EventReader
}

// NewKPIService creates a new KPIService
func NewKPIService(events ports.EventReader) *KPIService {
	return &KPIService{events: events}
}

// TimeToCommit summarizes switch-in to next-commit latencies. An empty
// repoID covers every repository.
func (s *KPIService) TimeToCommit(ctx context.Context, repoID string) ([]domain.LatencySummary, error) {
	events, err := s.events.ListEvents(ctx, domain.EventFilter{RepositoryID: repoID})
	if err != nil {
		return nil, err
	}
	return domain.SummarizeLatencies(domain.TimeToCommit(events)), nil
}
