package storage

import (
	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

func repositoryToModel(r domain.Repository) RepositoryModel {
	return RepositoryModel{
		ActiveBranch: r.ActiveBranch,
		ID:           r.ID,
		Path:         r.Path,
		Priority:     r.Priority,
	}
}

func snapshotToModel(s *domain.ContextSnapshot) ContextSnapshotModel {
	return ContextSnapshotModel{
		AISummary:           s.AISummary,
		GitSummary:          s.GitSummary,
		HumanBlocker:        nilIfEmpty(s.Human.Blocker),
		HumanNextStep:       nilIfEmpty(s.Human.NextStep),
		HumanNote:           nilIfEmpty(s.Human.Note),
		HumanObjective:      nilIfEmpty(s.Human.Objective),
		RepositoryID:        s.RepositoryID,
		TaskSummary:         s.TaskSummary,
		TerminalLastCommand: s.TerminalLastCommand,
		TerminalSummary:     s.TerminalSummary,
		Timestamp:           s.Timestamp.UTC(),
	}
}

func snapshotModelToDomain(m ContextSnapshotModel) domain.ContextSnapshot {
	return domain.ContextSnapshot{
		AISummary:  m.AISummary,
		GitSummary: m.GitSummary,
		Human: domain.HumanContext{
			Blocker:   deref(m.HumanBlocker),
			NextStep:  deref(m.HumanNextStep),
			Note:      deref(m.HumanNote),
			Objective: deref(m.HumanObjective),
		},
		ID:                  m.ID,
		RepositoryID:        m.RepositoryID,
		TaskSummary:         m.TaskSummary,
		TerminalLastCommand: m.TerminalLastCommand,
		TerminalSummary:     m.TerminalSummary,
		Timestamp:           m.Timestamp.UTC(),
	}
}

func eventModelToDomain(m EventLogModel) domain.Event {
	return domain.Event{
		ID:           m.ID,
		Kind:         domain.EventKind(m.EventKind),
		RepositoryID: m.RepositoryID,
		Timestamp:    m.Timestamp.UTC(),
	}
}

func usageToModel(u domain.AIUsage) AIUsageLogModel {
	return AIUsageLogModel{
		CostUSD:      u.CostUSD,
		InputTokens:  u.InputTokens,
		Model:        u.Model,
		OutputTokens: u.OutputTokens,
		Provider:     u.Provider,
		RepositoryID: u.RepositoryID,
		Success:      u.Success,
		Timestamp:    u.Timestamp.UTC(),
		Tokens:       u.Tokens(),
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
