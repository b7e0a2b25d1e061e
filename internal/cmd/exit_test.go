package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/handover"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

type codedError int

func (c codedError) Error() string { return fmt.Sprintf("exit %d", int(c)) }
func (c codedError) ExitCode() int { return int(c) }

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"handover", &handover.Request{RepoID: "beta"}, handover.ExitCode},
		{"unknown repository", fmt.Errorf("lookup: %w", domain.ErrUnknownRepository), ExitUnknownRepository},
		{"tmux missing", ports.ErrTmuxNotInstalled, ExitTmuxMissing},
		{
			"session create inside step error",
			&domain.StepError{Err: fmt.Errorf("%w pd-beta: exit 1", ports.ErrSessionCreate), Step: domain.StepPrepareSession},
			ExitSessionCreate,
		},
		{"generic", errors.New("boom"), ExitGeneric},
		{"coded", codedError(7), 7},
		{"coded 88 is remapped", codedError(handover.ExitCode), ExitGeneric},
		{"coded 0 is a failure", codedError(0), ExitGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitCode_OnlyHandoverMapsTo88(t *testing.T) {
	errs := []error{
		domain.ErrUnknownRepository,
		domain.ErrSnapshotNotFound,
		domain.ErrBudgetExceeded,
		ports.ErrSessionCreate,
		ports.ErrTmuxNotInstalled,
		errors.New("anything"),
	}
	for _, err := range errs {
		assert.NotEqual(t, handover.ExitCode, ExitCode(err), err.Error())
	}
}
