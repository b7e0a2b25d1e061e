package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// TimeoutDiff is the diff text stored when git does not answer in time
const TimeoutDiff = "Git command timed out"

// Inspector implements ports.GitInspector with go-git for branch and
// worktree state and the git binary for the diff stat
type Inspector struct {
	timeout time.Duration
}

// Verify interface compliance at compile time
var _ ports.GitInspector = (*Inspector)(nil)

// NewInspector creates an Inspector bounding each call by timeout
func NewInspector(timeout time.Duration) *Inspector {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Inspector{timeout: timeout}
}

type statusResult struct {
	err    error
	status domain.GitStatus
}

// Status implements GitInspector.Status
func (i *Inspector) Status(ctx context.Context, repoPath string) domain.Outcome[domain.GitStatus] {
	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err != nil {
		return domain.Ok(domain.GitStatus{Branch: domain.BranchUnknown})
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	// go-git has no cancellation, so the read runs aside and is abandoned on timeout
	done := make(chan statusResult, 1)
	go func() {
		st, err := readStatus(ctx, repoPath)
		done <- statusResult{err: err, status: st}
	}()

	select {
	case <-ctx.Done():
		return timedOut(repoPath)
	case res := <-done:
		if res.err != nil {
			if ctx.Err() != nil || errors.Is(res.err, context.DeadlineExceeded) {
				return timedOut(repoPath)
			}
			logging.Logger.Warn("Git status failed", "repo_path", repoPath, "error", res.err)
			return domain.Degrade(domain.GitStatus{Branch: domain.BranchError, DiffStat: res.err.Error()}, res.err.Error())
		}
		return domain.Ok(res.status)
	}
}

func timedOut(repoPath string) domain.Outcome[domain.GitStatus] {
	logging.Logger.Warn("Git status timed out", "repo_path", repoPath)
	return domain.Degrade(domain.GitStatus{Branch: domain.BranchTimeout, DiffStat: TimeoutDiff}, "git timed out")
}

func readStatus(ctx context.Context, repoPath string) (domain.GitStatus, error) {
	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		return domain.GitStatus{}, fmt.Errorf("failed to open repository: %w", err)
	}

	st := domain.GitStatus{Branch: domain.BranchUnknown}
	if head, err := repo.Head(); err == nil {
		if head.Name().IsBranch() {
			st.Branch = head.Name().Short()
		} else {
			st.Branch = head.Hash().String()[:7]
		}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return domain.GitStatus{}, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return domain.GitStatus{}, fmt.Errorf("failed to read worktree status: %w", err)
	}
	for path, fs := range status {
		if fs.Staging == gogit.Unmodified && fs.Worktree == gogit.Unmodified {
			continue
		}
		st.Files = append(st.Files, path)
	}
	sort.Strings(st.Files)
	st.Dirty = len(st.Files) > 0

	if err := ctx.Err(); err != nil {
		return domain.GitStatus{}, err
	}

	diff, err := diffStat(ctx, repoPath)
	if err != nil {
		return domain.GitStatus{}, err
	}
	st.DiffStat = diff
	return st, nil
}

// diffStat runs `git diff --stat` in repoPath
func diffStat(ctx context.Context, repoPath string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--stat")
	cmd.Dir = repoPath
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("git diff --stat failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
