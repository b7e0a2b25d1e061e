package domain

import "time"

// HumanContext holds the optional, human-authored part of a snapshot.
// Empty fields are stored as NULL.
type HumanContext struct {
	Blocker   string
	NextStep  string
	Note      string
	Objective string
}

// IsZero reports whether no field was supplied
func (h HumanContext) IsZero() bool {
	return h == HumanContext{}
}

// ContextSnapshot is one immutable freeze of a repository
type ContextSnapshot struct {
	AISummary           string
	GitSummary          string
	Human               HumanContext
	ID                  int64
	RepositoryID        string
	TaskSummary         string
	TerminalLastCommand string
	TerminalSummary     string
	Timestamp           time.Time

	// Degraded names the collaborators that returned a sentinel. Not persisted.
	Degraded []string
}

// SitrepRequest carries the facts an AI provider summarizes
type SitrepRequest struct {
	Git          GitStatus
	Human        HumanContext
	RepositoryID string
	Task         *Task
	Terminal     TerminalCapture
}
