package watcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

// skipDirs are never watched: git internals and dependency or build trees
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".venv":        true,
	"__pycache__":  true,
	"node_modules": true,
	"target":       true,
	"vendor":       true,
	"venv":         true,
}

// Watcher reports worktree activity and commits for a set of repositories
type Watcher struct {
	events   chan domain.Activity
	fs       *fsnotify.Watcher
	logs     map[string]*reflog // keyed by the watched logs/HEAD path
	mu       sync.Mutex
	registry *domain.Registry
	stopOnce sync.Once
	watching []string
}

// Verify interface compliance at compile time
var _ ports.ActivitySource = (*Watcher)(nil)

type reflog struct {
	lines  int
	repoID string
}

// New creates a Watcher over repos. Repositories whose path is missing
// are skipped with a warning.
func New(repos []domain.Repository) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}

	var present []domain.Repository
	for _, repo := range repos {
		if info, err := os.Stat(repo.Path); err != nil || !info.IsDir() {
			logging.Logger.Warn("Skipping repository, path not found", "repo_id", repo.ID, "path", repo.Path)
			continue
		}
		present = append(present, repo)
	}

	registry, err := domain.NewRegistry(present)
	if err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		events:   make(chan domain.Activity, 64),
		fs:       fw,
		logs:     make(map[string]*reflog),
		registry: registry,
	}

	for _, repo := range registry.All() {
		if err := w.addTree(repo.Path); err != nil {
			logging.Logger.Warn("Failed to watch repository", "repo_id", repo.ID, "error", err)
			continue
		}
		w.addReflog(repo)
		w.watching = append(w.watching, repo.ID)
	}

	return w, nil
}

// Watching returns the ids of repositories being watched
func (w *Watcher) Watching() []string {
	return append([]string(nil), w.watching...)
}

// Events returns the activity channel. It is closed when Run returns.
func (w *Watcher) Events() <-chan domain.Activity {
	return w.events
}

// Run processes filesystem events until ctx is cancelled or Close is called
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			w.Close()
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ctx, event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Logger.Warn("Watcher error", "error", err)
		}
	}
}

// Close stops the underlying watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}

	w.mu.Lock()
	log, isReflog := w.logs[event.Name]
	w.mu.Unlock()

	if isReflog {
		for range w.newCommits(event.Name, log) {
			w.emit(ctx, domain.Activity{Kind: domain.ActivityCommit, Path: event.Name, RepositoryID: log.repoID, Timestamp: time.Now().UTC()})
		}
		return
	}

	repo, ok := w.registry.DetectCurrent(event.Name)
	if !ok {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDirs[filepath.Base(event.Name)] {
			if err := w.addTree(event.Name); err != nil {
				logging.Logger.Debug("Failed to watch new directory", "path", event.Name, "error", err)
			}
		}
	}

	w.emit(ctx, domain.Activity{Kind: domain.ActivityWrite, Path: event.Name, RepositoryID: repo.ID, Timestamp: time.Now().UTC()})
}

func (w *Watcher) emit(ctx context.Context, a domain.Activity) {
	select {
	case w.events <- a:
	case <-ctx.Done():
	}
}

// addTree watches root and every directory below it except skipDirs
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

// addReflog watches .git/logs/HEAD, remembering how many lines it already has
func (w *Watcher) addReflog(repo domain.Repository) {
	path := filepath.Join(repo.Path, ".git", "logs", "HEAD")
	lines, err := countLines(path)
	if err != nil {
		return
	}
	if err := w.fs.Add(path); err != nil {
		logging.Logger.Debug("Failed to watch reflog", "repo_id", repo.ID, "error", err)
		return
	}
	w.mu.Lock()
	w.logs[path] = &reflog{lines: lines, repoID: repo.ID}
	w.mu.Unlock()
}

// newCommits returns the messages of commit entries appended since the last read
func (w *Watcher) newCommits(path string, log *reflog) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var all []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		all = append(all, scanner.Text())
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// The reflog was rewritten (expire, gc); start over from its current end
	if len(all) < log.lines {
		log.lines = len(all)
		return nil
	}

	var commits []string
	for _, line := range all[log.lines:] {
		if msg, ok := IsCommitEntry(line); ok {
			commits = append(commits, msg)
		}
	}
	log.lines = len(all)
	return commits
}

// IsCommitEntry reports whether a reflog line records a commit and returns
// its message. Entries look like "<old> <new> <who> <ts> <tz>\t<message>".
func IsCommitEntry(line string) (string, bool) {
	_, msg, ok := strings.Cut(line, "\t")
	if !ok {
		return "", false
	}
	return msg, strings.HasPrefix(msg, "commit")
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
	}
	return n, scanner.Err()
}
