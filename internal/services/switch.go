package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// SwitchStore is the part of the state store a switch touches
type SwitchStore interface {
	FreezeStore
	ports.EventWriter
	ports.SnapshotReader
}

// SwitchRequest describes one switch invocation
type SwitchRequest struct {
	Cwd          string
	Human        domain.HumanContext // Applied to the freeze of the current repository
	LaunchEditor bool
	OnStep       func(domain.StepReport)
	TargetID     string
}

// SwitchResult describes what a switch did
type SwitchResult struct {
	Current        *domain.Repository      // Nil when the working directory is in no repository
	Frozen         *domain.ContextSnapshot // Nil when no freeze ran
	Handover       bool                    // True when the shell must attach to Target
	OperationID    string
	SessionCreated bool
	Target         domain.Repository
	TargetSnapshot *domain.ContextSnapshot // Nil when Target was never frozen
}

// SwitchService sequences freeze, switch-in event, session preparation,
// editor launch and the handover decision.
type SwitchService struct {
	editor   ports.EditorLauncher
	freezer  *FreezeService
	now      func() time.Time
	registry *domain.Registry
	sessions *SessionPreparer
	store    SwitchStore
}

// NewSwitchService creates a new SwitchService. editor may be nil.
func NewSwitchService(
	registry *domain.Registry,
	freezer *FreezeService,
	sessions *SessionPreparer,
	editor ports.EditorLauncher,
	store SwitchStore,
) *SwitchService {
	return &SwitchService{
		editor:   editor,
		freezer:  freezer,
		now:      time.Now,
		registry: registry,
		sessions: sessions,
		store:    store,
	}
}

// Switch moves the user from the repository containing req.Cwd to
// req.TargetID. An unknown target fails before any side effect. Only a
// session preparation failure aborts a switch once it has started; it is
// returned as a *domain.StepError listing the steps that completed.
func (s *SwitchService) Switch(ctx context.Context, req SwitchRequest) (*SwitchResult, error) {
	target, err := s.registry.Lookup(req.TargetID)
	if err != nil {
		return nil, err
	}

	res := &SwitchResult{
		OperationID: uuid.New().String(),
		Target:      target,
	}
	log := logging.Logger.With("operation_id", res.OperationID, "target", target.ID)
	log.Info("Switch started", "cwd", req.Cwd)

	report := func(step domain.Step, status domain.StepStatus, detail string, err error) {
		attrs := []any{"step", string(step), "status", string(status)}
		if err != nil {
			attrs = append(attrs, "error", err)
		}
		level := slog.LevelDebug
		if status == domain.StepWarning || status == domain.StepFailed {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "Switch step", attrs...)
		if req.OnStep != nil {
			req.OnStep(domain.StepReport{Detail: detail, Err: err, Status: status, Step: step})
		}
	}
	var completed []domain.Step

	// Detect
	current, found := s.registry.DetectCurrent(req.Cwd)
	if found {
		res.Current = &current
		report(domain.StepDetect, domain.StepOK, current.ID, nil)
	} else {
		report(domain.StepDetect, domain.StepSkipped, "not inside a registered repository", nil)
	}
	sameRepo := found && current.ID == target.ID

	// Freeze
	switch {
	case !found:
		report(domain.StepFreeze, domain.StepSkipped, "no current repository", nil)
	case sameRepo:
		report(domain.StepFreeze, domain.StepSkipped, "already in "+target.ID, nil)
	default:
		snap, err := s.freezer.Freeze(ctx, current, req.Human)
		res.Frozen = snap
		if err != nil {
			report(domain.StepFreeze, domain.StepWarning, "failed to freeze "+current.ID, err)
		} else {
			completed = append(completed, domain.StepFreeze)
			report(domain.StepFreeze, domain.StepOK, current.ID, nil)
		}
	}

	// Switch-in event
	if sameRepo {
		report(domain.StepLogEvent, domain.StepSkipped, "already in "+target.ID, nil)
	} else {
		_, err := s.store.LogEvent(ctx, domain.Event{
			Kind:         domain.EventSwitchIn,
			RepositoryID: target.ID,
			Timestamp:    s.now().UTC(),
		})
		if err != nil {
			report(domain.StepLogEvent, domain.StepWarning, "failed to record switch-in", err)
		} else {
			completed = append(completed, domain.StepLogEvent)
			report(domain.StepLogEvent, domain.StepOK, target.ID, nil)
		}
	}

	// Session
	ensured, err := s.sessions.EnsureSession(ctx, target, false)
	if err != nil {
		report(domain.StepPrepareSession, domain.StepFailed, ensured.Name, err)
		log.Error("Switch aborted", "step", string(domain.StepPrepareSession), "error", err)
		return res, &domain.StepError{
			Completed: completed,
			Err:       err,
			Step:      domain.StepPrepareSession,
		}
	}
	res.SessionCreated = ensured.Created
	if ensured.Created {
		completed = append(completed, domain.StepPrepareSession)
		report(domain.StepPrepareSession, domain.StepOK, "created "+ensured.Name, nil)
	} else {
		report(domain.StepPrepareSession, domain.StepOK, "reusing "+ensured.Name, nil)
	}

	// Editor
	if req.LaunchEditor && s.editor != nil {
		if err := s.editor.Launch(target.Path); err != nil {
			report(domain.StepLaunchEditor, domain.StepWarning, "editor not launched", err)
		} else {
			report(domain.StepLaunchEditor, domain.StepOK, target.Path, nil)
		}
	} else {
		report(domain.StepLaunchEditor, domain.StepSkipped, "disabled", nil)
	}

	// Last snapshot
	snap, err := s.store.LatestSnapshot(ctx, target.ID)
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		report(domain.StepShowSnapshot, domain.StepSkipped, "no previous snapshot", nil)
	case err != nil:
		report(domain.StepShowSnapshot, domain.StepWarning, "failed to load snapshot", err)
	default:
		res.TargetSnapshot = snap
		report(domain.StepShowSnapshot, domain.StepOK, fmt.Sprintf("snapshot %d", snap.ID), nil)
	}

	res.Handover = !sameRepo
	if res.Handover {
		report(domain.StepHandover, domain.StepOK, target.ID, nil)
	} else {
		report(domain.StepHandover, domain.StepSkipped, "already in "+target.ID, nil)
	}

	log.Info("Switch finished", "handover", res.Handover, "session_created", res.SessionCreated)
	return res, nil
}
