package domain

import "time"

// EventKind classifies an event log entry
type EventKind string

const (
	EventCommit   EventKind = "commit"
	EventSwitchIn EventKind = "switch-in"
)

// Event is an append-only, timestamped fact about a repository
type Event struct {
	ID           int64
	Kind         EventKind
	RepositoryID string
	Timestamp    time.Time
}

// EventFilter narrows ListEvents. Zero values mean no constraint.
type EventFilter struct {
	Kind         EventKind
	RepositoryID string
	Since        time.Time
}
