package tmux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// DefaultClient drives the tmux binary through discrete-argument subprocesses
type DefaultClient struct {
	binary       string
	readyTimeout time.Duration
}

// Compile-time interface verification
var _ ports.TmuxClient = (*DefaultClient)(nil)

// NewClient creates a new DefaultClient instance
func NewClient() *DefaultClient {
	return &DefaultClient{
		binary:       "tmux",
		readyTimeout: 2 * time.Second,
	}
}

// Available returns ports.ErrTmuxNotInstalled when tmux is not on PATH
func (c *DefaultClient) Available() error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return fmt.Errorf("%w: install it with `brew install tmux` or `apt install tmux`", ports.ErrTmuxNotInstalled)
	}
	return nil
}

// HasSession checks if the tmux session exists. tmux exits 1 both when the
// session is missing and when no server is running, so any exit status is
// reported as "absent" and only a failure to run tmux is an error.
func (c *DefaultClient) HasSession(ctx context.Context, name string) (bool, error) {
	cmd := exec.CommandContext(ctx, c.binary, "has-session", "-t", exactTarget(name))
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, fmt.Errorf("failed to run tmux has-session: %w", err)
}

// NewSession creates a detached session rooted at dir and waits until tmux
// reports it. dir and every element of command are separate arguments.
func (c *DefaultClient) NewSession(ctx context.Context, name, dir string, command []string) error {
	logging.Logger.Info("Creating tmux session", "name", name, "dir", dir, "command", command)

	args := []string{"new-session", "-d", "-s", name}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	args = append(args, command...)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w %s: %v (output: %s)", ports.ErrSessionCreate, name, err, strings.TrimSpace(string(output)))
	}

	// Wait for session to be ready
	timeout := time.After(c.readyTimeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w %s: %v", ports.ErrSessionCreate, name, ctx.Err())
		case <-timeout:
			return fmt.Errorf("%w %s: timeout waiting for session to appear", ports.ErrSessionCreate, name)
		case <-ticker.C:
			if ok, _ := c.HasSession(ctx, name); ok {
				logging.Logger.Info("Session created", "name", name)
				return nil
			}
		}
	}
}

// InsideTmux reports whether this process runs inside a tmux client
func (c *DefaultClient) InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// SwitchClient moves the current tmux client to the named session
func (c *DefaultClient) SwitchClient(ctx context.Context, name string) error {
	cmd := exec.CommandContext(ctx, c.binary, "switch-client", "-t", exactTarget(name))
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to switch client to %s: %w (output: %s)", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// AttachReplace replaces the current process image with
// `tmux attach-session`. TMUX and TMUX_PANE are stripped so the attach is
// allowed even from a nested shell. Only returns on failure.
func (c *DefaultClient) AttachReplace(name string) error {
	path, err := exec.LookPath(c.binary)
	if err != nil {
		return ports.ErrTmuxNotInstalled
	}

	logging.Logger.Info("Replacing process with tmux attach", "name", name)
	logging.Close()

	argv := []string{c.binary, "attach-session", "-t", exactTarget(name)}
	if err := unix.Exec(path, argv, attachEnv(os.Environ())); err != nil {
		return fmt.Errorf("failed to exec tmux attach-session: %w", err)
	}
	return nil
}

// CapturePane captures pane scrollback starting at startLine. An empty
// target captures the pane tmux considers current.
func (c *DefaultClient) CapturePane(ctx context.Context, target string, startLine int) (string, error) {
	args := []string{"capture-pane", "-p", "-S", strconv.Itoa(startLine)}
	if target != "" {
		args = append(args, "-t", exactTarget(target)+":")
	}
	output, err := exec.CommandContext(ctx, c.binary, args...).Output()
	if err != nil {
		return "", err
	}
	return string(output), nil
}

// exactTarget prevents tmux from prefix-matching pd-api against pd-api-v2
func exactTarget(name string) string {
	return "=" + name
}

// attachEnv copies env without the variables that make tmux refuse a nested attach
func attachEnv(env []string) []string {
	var cleanEnv []string
	for _, e := range env {
		if !strings.HasPrefix(e, "TMUX=") && !strings.HasPrefix(e, "TMUX_PANE=") {
			cleanEnv = append(cleanEnv, e)
		}
	}
	return cleanEnv
}
