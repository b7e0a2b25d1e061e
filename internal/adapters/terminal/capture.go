package terminal

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/handover"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// Placeholder texts stored when no scrollback could be read
const (
	NotInstalledOutput = "tmux not installed."
	NoSessionOutput    = "No tmux session found or capture failed."
	TimeoutOutput      = "Terminal capture timed out."
	UnknownCommand     = "unknown"
)

// scrollbackLines is how far back capture-pane reads
const scrollbackLines = 50

var promptRe = regexp.MustCompile(`^\s*(?:\$|❯|>)\s+(.+?)\s*$`)

// Capturer implements ports.TerminalCapturer on top of tmux capture-pane
type Capturer struct {
	client   ports.TmuxClient
	redactor *Redactor
	timeout  time.Duration
}

// Verify interface compliance at compile time
var _ ports.TerminalCapturer = (*Capturer)(nil)

// NewCapturer creates a Capturer. A nil redactor leaves output untouched.
func NewCapturer(client ports.TmuxClient, redactor *Redactor, timeout time.Duration) *Capturer {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Capturer{client: client, redactor: redactor, timeout: timeout}
}

// Capture implements TerminalCapturer.Capture. It reads the repository's
// session when one exists and the current pane otherwise.
func (c *Capturer) Capture(ctx context.Context, repoID string) domain.Outcome[domain.TerminalCapture] {
	if err := c.client.Available(); err != nil {
		return degraded(NotInstalledOutput, "tmux not installed")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := ""
	if repoID != "" {
		name := handover.SessionName(repoID)
		if ok, err := c.client.HasSession(ctx, name); err == nil && ok {
			target = name
		}
	}

	output, err := c.client.CapturePane(ctx, target, -scrollbackLines)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return degraded(TimeoutOutput, "terminal capture timed out")
		}
		logging.Logger.Debug("Terminal capture failed", "repo_id", repoID, "target", target, "error", err)
		return degraded(NoSessionOutput, err.Error())
	}

	output = strings.TrimSpace(output)
	if c.redactor != nil {
		output = c.redactor.Redact(output)
	}

	return domain.Ok(domain.TerminalCapture{
		LastCommand: LastCommand(output),
		Output:      output,
	})
}

// LastCommand returns the most recent command typed at a recognised shell
// prompt, or "unknown"
func LastCommand(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if m := promptRe.FindStringSubmatch(lines[i]); m != nil {
			if cmd := strings.TrimSpace(m[1]); cmd != "" {
				return cmd
			}
		}
	}
	return UnknownCommand
}

func degraded(output, reason string) domain.Outcome[domain.TerminalCapture] {
	return domain.Degrade(domain.TerminalCapture{LastCommand: UnknownCommand, Output: output}, reason)
}
