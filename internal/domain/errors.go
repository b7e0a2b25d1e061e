package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBudgetExceeded       = errors.New("monthly AI budget exceeded")
	ErrConfirmationRequired = errors.New("OpenAI fallback requires confirmation")
	ErrDuplicateRepository  = errors.New("duplicate repository id")
	ErrInvalidRepositoryID  = errors.New("invalid repository id")
	ErrSnapshotNotFound     = errors.New("no snapshot found")
	ErrUnknownRepository    = errors.New("unknown repository")
)

// StepError reports the switch step that failed and the side effects that
// completed before it.
type StepError struct {
	Completed []Step
	Err       error
	Step      Step
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("switch failed at step %q: %v", e.Step, e.Err)
	if len(e.Completed) == 0 {
		return msg + " (no side effects completed)"
	}
	names := make([]string, len(e.Completed))
	for i, s := range e.Completed {
		names[i] = string(s)
	}
	return msg + " (completed: " + strings.Join(names, ", ") + ")"
}

func (e *StepError) Unwrap() error { return e.Err }
