package editor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// Launcher implements ports.EditorLauncher
type Launcher struct {
	args    []string
	command string
}

// Verify interface compliance at compile time
var _ ports.EditorLauncher = (*Launcher)(nil)

// NewLauncher creates a launcher preferring command (with args before the path)
func NewLauncher(command string, args []string) *Launcher {
	return &Launcher{args: args, command: command}
}

// Launch opens path in an editor and returns without waiting for it.
// Priority: configured command → $PD_EDITOR → $VISUAL → $EDITOR → platform defaults
func (l *Launcher) Launch(path string) error {
	if path == "" {
		return fmt.Errorf("no path provided")
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}

	editor, args := l.findEditor(path)
	if editor == "" {
		return fmt.Errorf("no suitable editor found. Set system.editor_cmd, $PD_EDITOR, $VISUAL, or $EDITOR")
	}

	logging.Logger.Info("Opening editor", "editor", editor, "args", args)

	cmd := exec.Command(editor, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start editor: %w", err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Logger.Warn("Editor exited with error", "error", err, "editor", editor)
		}
	}()

	return nil
}

// Resolve reports which editor Launch would run, without running it
func (l *Launcher) Resolve() (string, bool) {
	editor, _ := l.findEditor(".")
	return editor, editor != ""
}

func (l *Launcher) findEditor(path string) (string, []string) {
	// 1. Configured command, when installed
	if l.command != "" {
		if _, err := exec.LookPath(l.command); err == nil {
			return l.command, append(append([]string(nil), l.args...), path)
		}
		logging.Logger.Debug("Configured editor not on PATH", "editor", l.command)
	}

	// 2. Environment
	for _, env := range []string{"PD_EDITOR", "VISUAL", "EDITOR"} {
		if editor := os.Getenv(env); editor != "" {
			return editor, []string{path}
		}
	}

	// 3. Platform-specific defaults
	return findPlatformEditor(path)
}

// NoopLauncher records launches without starting anything. Used in mock mode.
type NoopLauncher struct{}

// Verify interface compliance at compile time
var _ ports.EditorLauncher = NoopLauncher{}

func (NoopLauncher) Launch(path string) error {
	logging.Logger.Info("Mock editor launch", "path", path)
	return nil
}
