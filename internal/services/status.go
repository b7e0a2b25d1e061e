package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/handover"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

const statusConcurrency = 4

// RepoStatus is one row of `pd status`
type RepoStatus struct {
	Git           domain.Outcome[domain.GitStatus]
	LastSnapshot  *domain.ContextSnapshot // Nil when never frozen
	Repository    domain.Repository
	SessionActive bool
}

// StatusService reports the live state of every registered repository
type StatusService struct {
	git      ports.GitInspector
	registry *domain.Registry
	store    ports.SnapshotReader
	tmux     ports.TmuxClient
}

// NewStatusService creates a new StatusService. tmux may be nil.
func NewStatusService(
	registry *domain.Registry,
	git ports.GitInspector,
	store ports.SnapshotReader,
	tmux ports.TmuxClient,
) *StatusService {
	return &StatusService{
		git:      git,
		registry: registry,
		store:    store,
		tmux:     tmux,
	}
}

// Status returns one row per repository, in registry order
func (s *StatusService) Status(ctx context.Context) ([]RepoStatus, error) {
	repos := s.registry.All()
	rows := make([]RepoStatus, len(repos))

	tmuxOK := s.tmux != nil && s.tmux.Available() == nil

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statusConcurrency)
	for i, repo := range repos {
		g.Go(func() error {
			row := RepoStatus{Repository: repo}
			row.Git = s.git.Status(gctx, repo.Path)

			snap, err := s.store.LatestSnapshot(gctx, repo.ID)
			switch {
			case errors.Is(err, domain.ErrSnapshotNotFound):
			case err != nil:
				return err
			default:
				row.LastSnapshot = snap
			}

			if tmuxOK {
				active, err := s.tmux.HasSession(gctx, handover.SessionName(repo.ID))
				row.SessionActive = err == nil && active
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
