package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGitStatusSummary(t *testing.T) {
	s := GitStatus{Branch: "main", Dirty: true, Files: []string{"a.go", "b.go"}, DiffStat: " a.go | 2 +-\n"}
	assert.Equal(t, "Branch: main\nDirty: true\nFiles: a.go, b.go\nDiff: a.go | 2 +-", s.Summary())

	clean := GitStatus{Branch: BranchUnknown}
	assert.Equal(t, "Branch: unknown\nDirty: false\nFiles: none\nDiff: (no diff)", clean.Summary())
}

func TestTaskSummary(t *testing.T) {
	var none *Task
	assert.Equal(t, "", none.Summary())

	task := &Task{ID: "7", Title: "Wire daemon", Priority: "high", Description: "watch logs/HEAD"}
	assert.Equal(t, "Task 7: Wire daemon [high]\nwatch logs/HEAD", task.Summary())
}

func TestStepError(t *testing.T) {
	err := &StepError{Step: StepPrepareSession, Err: ErrUnknownRepository, Completed: []Step{StepFreeze, StepLogEvent}}
	assert.ErrorIs(t, err, ErrUnknownRepository)
	assert.Contains(t, err.Error(), "completed: freeze-current, log-switch-in")
}
