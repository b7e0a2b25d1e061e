package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Registry is the read-only set of repositories loaded once at startup
type Registry struct {
	byID   map[string]Repository
	sorted []Repository
}

// NewRegistry validates ids and normalizes paths
func NewRegistry(repos []Repository) (*Registry, error) {
	r := &Registry{byID: make(map[string]Repository, len(repos))}
	for _, repo := range repos {
		if err := ValidateRepositoryID(repo.ID); err != nil {
			return nil, err
		}
		if _, exists := r.byID[repo.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRepository, repo.ID)
		}
		if repo.Path == "" {
			return nil, fmt.Errorf("repository %s has no path", repo.ID)
		}
		repo.Path = filepath.Clean(repo.Path)
		r.byID[repo.ID] = repo
		r.sorted = append(r.sorted, repo)
	}

	sort.SliceStable(r.sorted, func(i, j int) bool {
		if r.sorted[i].Priority != r.sorted[j].Priority {
			return r.sorted[i].Priority > r.sorted[j].Priority
		}
		return r.sorted[i].ID < r.sorted[j].ID
	})

	return r, nil
}

// Lookup returns the repository with the given id or ErrUnknownRepository
func (r *Registry) Lookup(id string) (Repository, error) {
	repo, ok := r.byID[id]
	if !ok {
		return Repository{}, fmt.Errorf("%w: %s", ErrUnknownRepository, id)
	}
	return repo, nil
}

// All returns repositories ordered by priority (highest first), then id
func (r *Registry) All() []Repository {
	out := make([]Repository, len(r.sorted))
	copy(out, r.sorted)
	return out
}

// Len returns the number of registered repositories
func (r *Registry) Len() int { return len(r.sorted) }

// DetectCurrent finds the repository whose path is the longest prefix of dir.
// Matches respect path boundaries: /p/app does not match /p/application.
func (r *Registry) DetectCurrent(dir string) (Repository, bool) {
	if dir == "" {
		return Repository{}, false
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	dir = filepath.Clean(dir)

	var best Repository
	found := false
	for _, repo := range r.sorted {
		if !containsPath(repo.Path, dir) {
			continue
		}
		if !found || len(repo.Path) > len(best.Path) ||
			(len(repo.Path) == len(best.Path) && repo.ID < best.ID) {
			best = repo
			found = true
		}
	}
	return best, found
}

func containsPath(root, dir string) bool {
	if dir == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}
	return strings.HasPrefix(dir, prefix)
}
