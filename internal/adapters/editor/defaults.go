package editor

import (
	"os/exec"
)

// guiEditors are tried in order when nothing is configured. Terminal
// editors are left out: the editor is started detached from pd's terminal.
var guiEditors = []string{"windsurf", "code", "cursor", "zed", "subl", "codium"}

// findPlatformEditor returns the first installed GUI editor. There is no
// shell fallback; the path is only ever passed as a discrete argument.
func findPlatformEditor(path string) (string, []string) {
	for _, name := range guiEditors {
		if _, err := exec.LookPath(name); err == nil {
			return name, []string{path}
		}
	}
	return "", nil
}
