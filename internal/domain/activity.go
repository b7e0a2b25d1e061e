package domain

import "time"

// ActivityKind distinguishes plain edits from commits
type ActivityKind int

const (
	// ActivityWrite is any change inside a repository's worktree
	ActivityWrite ActivityKind = iota
	// ActivityCommit is a new commit recorded in .git/logs/HEAD
	ActivityCommit
)

func (k ActivityKind) String() string {
	if k == ActivityCommit {
		return "commit"
	}
	return "write"
}

// Activity is one observed change in a watched repository
type Activity struct {
	Kind         ActivityKind
	Path         string
	RepositoryID string
	Timestamp    time.Time
}
