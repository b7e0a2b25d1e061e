package domain

import (
	"fmt"
	"regexp"
)

var repositoryIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateRepositoryID rejects ids that are not safe to embed in a tmux
// session name or a shell word.
func ValidateRepositoryID(id string) error {
	if !repositoryIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q (allowed: letters, digits, '-', '_')", ErrInvalidRepositoryID, id)
	}
	return nil
}

// Repository is a registered working copy that can be frozen and switched to
type Repository struct {
	ActiveBranch string
	ID           string
	Path         string
	Priority     int
}
