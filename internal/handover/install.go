package handover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const installMarker = "# Added by pd shell-init"

// RCFile returns the startup file the wrapper is installed into for shell
func RCFile(homeDir, shell string) (string, error) {
	switch shell {
	case "bash":
		return filepath.Join(homeDir, ".bashrc"), nil
	case "zsh":
		return filepath.Join(homeDir, ".zshrc"), nil
	case "fish":
		return filepath.Join(homeDir, ".config", "fish", "config.fish"), nil
	default:
		return "", fmt.Errorf("unsupported shell %q (supported: %v)", shell, Shells)
	}
}

func sourceLine(shell, binary string) string {
	if shell == "fish" {
		return fmt.Sprintf("%s shell-init fish | source %s", binary, installMarker)
	}
	return fmt.Sprintf(`eval "$(%s shell-init %s)" %s`, binary, shell, installMarker)
}

// Install appends the wrapper loader to the shell's rc file. It is idempotent:
// a file already carrying the marker is left untouched and added is false.
func Install(homeDir, shell, binary string) (rcFile string, added bool, err error) {
	rcFile, err = RCFile(homeDir, shell)
	if err != nil {
		return "", false, err
	}
	if binary == "" {
		binary = "pd"
	}

	installed, err := IsInstalled(rcFile)
	if err != nil {
		return rcFile, false, err
	}
	if installed {
		return rcFile, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(rcFile), 0o755); err != nil {
		return rcFile, false, fmt.Errorf("failed to create %s: %w", filepath.Dir(rcFile), err)
	}

	f, err := os.OpenFile(rcFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return rcFile, false, fmt.Errorf("failed to open %s: %w", rcFile, err)
	}
	defer f.Close()

	if _, err := f.WriteString("\n" + sourceLine(shell, binary) + "\n"); err != nil {
		return rcFile, false, fmt.Errorf("failed to write to %s: %w", rcFile, err)
	}
	return rcFile, true, nil
}

// IsInstalled reports whether rcFile already loads the wrapper
func IsInstalled(rcFile string) (bool, error) {
	content, err := os.ReadFile(rcFile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", rcFile, err)
	}
	return strings.Contains(string(content), installMarker), nil
}
