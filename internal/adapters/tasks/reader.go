package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// StatusInProgress is the Task Master status of active work
const StatusInProgress = "in-progress"

var priorityRank = map[string]int{"high": 3, "medium": 2, "low": 1}

// Reader implements ports.TaskReader over .taskmaster/tasks/tasks.json
type Reader struct {
	timeout time.Duration
}

// Verify interface compliance at compile time
var _ ports.TaskReader = (*Reader)(nil)

// NewReader creates a Reader bounding each read by timeout
func NewReader(timeout time.Duration) *Reader {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Reader{timeout: timeout}
}

// TasksFile returns the tasks.json location for a repository
func TasksFile(repoPath string) string {
	return filepath.Join(repoPath, ".taskmaster", "tasks", "tasks.json")
}

type taskFile struct {
	Tasks []rawTask `json:"tasks"`
}

type rawTask struct {
	Description string          `json:"description"`
	ID          json.RawMessage `json:"id"`
	Priority    string          `json:"priority"`
	Status      string          `json:"status"`
	Title       string          `json:"title"`
}

// ActiveTask implements TaskReader.ActiveTask. A missing file is not a
// failure: it yields no task.
func (r *Reader) ActiveTask(ctx context.Context, repoPath string) domain.Outcome[*domain.Task] {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		err  error
		task *domain.Task
	}
	done := make(chan result, 1)
	go func() {
		task, err := readActiveTask(repoPath)
		done <- result{err: err, task: task}
	}()

	select {
	case <-ctx.Done():
		return domain.Degrade[*domain.Task](nil, "task read timed out")
	case res := <-done:
		if res.err != nil {
			logging.Logger.Warn("Failed to read tasks", "repo_path", repoPath, "error", res.err)
			return domain.Degrade[*domain.Task](nil, res.err.Error())
		}
		return domain.Ok(res.task)
	}
}

func readActiveTask(repoPath string) (*domain.Task, error) {
	data, err := os.ReadFile(TasksFile(repoPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read tasks file: %w", err)
	}

	var tags map[string]json.RawMessage
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("failed to parse tasks file: %w", err)
	}

	type candidate struct {
		id   int
		rank int
		task *domain.Task
	}
	var candidates []candidate

	for _, raw := range tags {
		var tf taskFile
		// Tags that are not task lists (metadata and the like) are skipped
		if err := json.Unmarshal(raw, &tf); err != nil {
			continue
		}
		for _, t := range tf.Tasks {
			if t.Status != StatusInProgress {
				continue
			}
			priority := strings.ToLower(t.Priority)
			if priority == "" {
				priority = "medium"
			}
			rank, ok := priorityRank[priority]
			if !ok {
				rank = 1
			}
			id := idString(t.ID)
			numericID, _ := strconv.Atoi(id)
			candidates = append(candidates, candidate{
				id:   numericID,
				rank: rank,
				task: &domain.Task{
					Description: t.Description,
					ID:          id,
					Priority:    priority,
					Status:      t.Status,
					Title:       t.Title,
				},
			})
		}
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].rank != candidates[j].rank {
			return candidates[i].rank > candidates[j].rank
		}
		return candidates[i].id > candidates[j].id
	})
	return candidates[0].task, nil
}

// idString accepts numeric and string ids
func idString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return strings.Trim(string(raw), `"`)
}
