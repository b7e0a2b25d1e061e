// Package handover implements the contract between pd and the shell wrapper
// that performs the terminal attach after pd has exited.
package handover

import (
	"fmt"
	"io"
	"os"
)

// ExitCode is reserved for "terminal handover requested". No other outcome
// of the program may exit with it.
const ExitCode = 88

// SessionPrefix is prepended to a repository id to name its tmux session
const SessionPrefix = "pd-"

// FileEnv names the file the wrapper asks pd to write the target id into
const FileEnv = "PD_HANDOVER_FILE"

// SessionName derives the tmux session name for a repository id
func SessionName(repoID string) string {
	return SessionPrefix + repoID
}

// Request is returned by a command that needs the shell to attach to a
// repository's session.
type Request struct {
	RepoID string
}

func (r *Request) Error() string {
	return fmt.Sprintf("terminal handover requested for %s", r.RepoID)
}

// Announce writes the repository id as the final line of out, and into the
// file named by PD_HANDOVER_FILE when the wrapper provided one.
func Announce(out io.Writer, repoID string) error {
	if _, err := fmt.Fprintln(out, repoID); err != nil {
		return fmt.Errorf("failed to write handover target: %w", err)
	}

	path := os.Getenv(FileEnv)
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(repoID+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write handover file: %w", err)
	}
	return nil
}
