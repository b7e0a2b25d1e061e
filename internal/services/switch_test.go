package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ImmortalDemonGod/prime-directive/internal/adapters/storage"
	"github.com/ImmortalDemonGod/prime-directive/internal/adapters/tmux"
	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
	portsmocks "github.com/ImmortalDemonGod/prime-directive/internal/ports/mocks"
)

type switchFixture struct {
	alpha    domain.Repository
	beta     domain.Repository
	editor   *portsmocks.MockEditorLauncher
	registry *domain.Registry
	service  *SwitchService
	store    *storage.SQLiteStore
	tmux     *tmux.MemoryClient
}

func newSwitchFixture(t *testing.T) *switchFixture {
	t.Helper()
	alpha, beta, registry := twoRepos(t)
	store := newStore(t)
	client := tmux.NewMemoryClient("")
	editor := portsmocks.NewMockEditorLauncher(t)

	return &switchFixture{
		alpha:    alpha,
		beta:     beta,
		editor:   editor,
		registry: registry,
		service: NewSwitchService(
			registry,
			NewFreezeService(newCollector(t), store),
			NewSessionPreparer(client, []string{"bash"}),
			editor,
			store,
		),
		store: store,
		tmux:  client,
	}
}

func TestSwitch_FreezesSourceAndRequestsHandover(t *testing.T) {
	f := newSwitchFixture(t)
	f.editor.EXPECT().Launch(f.beta.Path).Return(nil)
	start := time.Now().UTC().Add(-time.Second)

	var steps []domain.StepReport
	res, err := f.service.Switch(context.Background(), SwitchRequest{
		Cwd:          filepath.Join(f.alpha.Path, "src"),
		Human:        domain.HumanContext{Note: "parked mid-refactor"},
		LaunchEditor: true,
		OnStep:       func(r domain.StepReport) { steps = append(steps, r) },
		TargetID:     "beta",
	})
	require.NoError(t, err)

	assert.True(t, res.Handover)
	assert.True(t, res.SessionCreated)
	require.NotNil(t, res.Current)
	assert.Equal(t, "alpha", res.Current.ID)
	assert.NotEmpty(t, res.OperationID)
	assert.Nil(t, res.TargetSnapshot)

	snaps, err := f.store.ListSnapshots(context.Background(), "alpha", 0)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.NotEmpty(t, snaps[0].GitSummary)
	assert.Contains(t, snaps[0].GitSummary, "Dirty: true")
	assert.Equal(t, "parked mid-refactor", snaps[0].Human.Note)
	assert.False(t, snaps[0].Timestamp.Before(start))

	events, err := f.store.ListEvents(context.Background(), domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "beta", events[0].RepositoryID)
	assert.Equal(t, domain.EventSwitchIn, events[0].Kind)

	sessions := f.tmux.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, "pd-beta", sessions[0].Name)
	assert.Equal(t, f.beta.Path, sessions[0].Dir)
	assert.Empty(t, f.tmux.Attached(), "the switch must never attach itself")
	assert.Empty(t, f.tmux.Switched())

	var order []domain.Step
	for _, s := range steps {
		order = append(order, s.Step)
	}
	assert.Equal(t, []domain.Step{
		domain.StepDetect,
		domain.StepFreeze,
		domain.StepLogEvent,
		domain.StepPrepareSession,
		domain.StepLaunchEditor,
		domain.StepShowSnapshot,
		domain.StepHandover,
	}, order)
}

func TestSwitch_UnknownRepositoryHasNoSideEffects(t *testing.T) {
	f := newSwitchFixture(t)
	called := false

	res, err := f.service.Switch(context.Background(), SwitchRequest{
		Cwd:      f.alpha.Path,
		OnStep:   func(domain.StepReport) { called = true },
		TargetID: "gamma",
	})

	require.ErrorIs(t, err, domain.ErrUnknownRepository)
	assert.Nil(t, res)
	assert.False(t, called)
	assert.Zero(t, countSnapshots(t, f.store, "alpha"))
	assert.Zero(t, countEvents(t, f.store, domain.EventFilter{}))
	assert.Zero(t, f.tmux.NewSessionCalls())
}

func TestSwitch_NoCurrentRepositorySkipsFreeze(t *testing.T) {
	f := newSwitchFixture(t)

	res, err := f.service.Switch(context.Background(), SwitchRequest{
		Cwd:      t.TempDir(),
		TargetID: "beta",
	})
	require.NoError(t, err)

	assert.Nil(t, res.Current)
	assert.Nil(t, res.Frozen)
	assert.True(t, res.Handover)
	assert.Zero(t, countSnapshots(t, f.store, "alpha"))
	assert.Zero(t, countSnapshots(t, f.store, "beta"))
	assert.Equal(t, 1, countEvents(t, f.store, domain.EventFilter{Kind: domain.EventSwitchIn, RepositoryID: "beta"}))
}

func TestSwitch_SameRepositoryNeedsNoHandover(t *testing.T) {
	f := newSwitchFixture(t)

	res, err := f.service.Switch(context.Background(), SwitchRequest{
		Cwd:      f.beta.Path,
		TargetID: "beta",
	})
	require.NoError(t, err)

	assert.False(t, res.Handover)
	assert.Nil(t, res.Frozen)
	assert.Zero(t, countSnapshots(t, f.store, "beta"))
	assert.Zero(t, countEvents(t, f.store, domain.EventFilter{}))
	assert.Equal(t, 1, f.tmux.NewSessionCalls())
}

func TestSwitch_ShowsLatestTargetSnapshot(t *testing.T) {
	f := newSwitchFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.SyncRepositories(ctx, []domain.Repository{f.beta}))
	require.NoError(t, f.store.SaveSnapshot(ctx, &domain.ContextSnapshot{
		AISummary:    "Resume the migration.",
		RepositoryID: "beta",
		Timestamp:    time.Now().UTC().Add(-time.Hour),
	}))

	res, err := f.service.Switch(ctx, SwitchRequest{Cwd: f.alpha.Path, TargetID: "beta"})
	require.NoError(t, err)

	require.NotNil(t, res.TargetSnapshot)
	assert.Equal(t, "Resume the migration.", res.TargetSnapshot.AISummary)
}

func TestSwitch_EditorFailureIsNotFatal(t *testing.T) {
	f := newSwitchFixture(t)
	f.editor.EXPECT().Launch(f.beta.Path).Return(errors.New("windsurf: not found"))

	var warned bool
	res, err := f.service.Switch(context.Background(), SwitchRequest{
		Cwd:          f.alpha.Path,
		LaunchEditor: true,
		OnStep: func(r domain.StepReport) {
			if r.Step == domain.StepLaunchEditor && r.Status == domain.StepWarning {
				warned = true
			}
		},
		TargetID: "beta",
	})

	require.NoError(t, err)
	assert.True(t, res.Handover)
	assert.True(t, warned)
}

func TestSwitch_SessionFailureIsFatalStepError(t *testing.T) {
	alpha, _, registry := twoRepos(t)
	store := newStore(t)

	client := portsmocks.NewMockTmuxClient(t)
	client.EXPECT().Available().Return(nil)
	client.EXPECT().HasSession(mock.Anything, "pd-beta").Return(false, nil)
	client.EXPECT().NewSession(mock.Anything, "pd-beta", mock.Anything, mock.Anything).
		Return(errors.New("exit status 1"))

	svc := NewSwitchService(
		registry,
		NewFreezeService(newCollector(t), store),
		NewSessionPreparer(client, []string{"bash"}),
		nil,
		store,
	)

	res, err := svc.Switch(context.Background(), SwitchRequest{Cwd: alpha.Path, TargetID: "beta"})

	var stepErr *domain.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, domain.StepPrepareSession, stepErr.Step)
	assert.Equal(t, []domain.Step{domain.StepFreeze, domain.StepLogEvent}, stepErr.Completed)
	assert.ErrorIs(t, err, ports.ErrSessionCreate)
	assert.Contains(t, err.Error(), "completed: freeze-current, log-switch-in")
	require.NotNil(t, res)
	assert.False(t, res.Handover)

	// The freeze and the event survive the failed switch
	assert.Equal(t, 1, countSnapshots(t, store, "alpha"))
	assert.Equal(t, 1, countEvents(t, store, domain.EventFilter{RepositoryID: "beta"}))
}

func TestSwitch_FreezeFailureDoesNotAbort(t *testing.T) {
	_, beta, registry := twoRepos(t)
	store := newStore(t)
	client := tmux.NewMemoryClient("")

	svc := NewSwitchService(
		registry,
		NewFreezeService(newCollector(t), failingSaveStore{FreezeStore: store}),
		NewSessionPreparer(client, []string{"bash"}),
		nil,
		store,
	)

	var freezeStatus domain.StepStatus
	res, err := svc.Switch(context.Background(), SwitchRequest{
		Cwd: registryPath(t, registry, "alpha"),
		OnStep: func(r domain.StepReport) {
			if r.Step == domain.StepFreeze {
				freezeStatus = r.Status
			}
		},
		TargetID: beta.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StepWarning, freezeStatus)
	assert.True(t, res.Handover)
	assert.Equal(t, 1, countEvents(t, store, domain.EventFilter{Kind: domain.EventSwitchIn}))
}

func TestSwitch_NestedRepositoryResolvesInnermost(t *testing.T) {
	root := t.TempDir()
	registry, err := domain.NewRegistry([]domain.Repository{
		{ID: "parent", Path: filepath.Join(root, "parent")},
		{ID: "child", Path: filepath.Join(root, "parent", "child")},
		{ID: "other", Path: filepath.Join(root, "other")},
	})
	require.NoError(t, err)
	store := newStore(t)

	svc := NewSwitchService(
		registry,
		NewFreezeService(newCollector(t), store),
		NewSessionPreparer(tmux.NewMemoryClient(""), []string{"bash"}),
		nil,
		store,
	)

	res, err := svc.Switch(context.Background(), SwitchRequest{
		Cwd:      filepath.Join(root, "parent", "child", "src"),
		TargetID: "other",
	})
	require.NoError(t, err)

	assert.Equal(t, "child", res.Current.ID)
	assert.Equal(t, 1, countSnapshots(t, store, "child"))
	assert.Zero(t, countSnapshots(t, store, "parent"))
}

func registryPath(t *testing.T, r *domain.Registry, id string) string {
	t.Helper()
	repo, err := r.Lookup(id)
	require.NoError(t, err)
	return repo.Path
}
