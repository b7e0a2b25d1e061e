package handover

import (
	"bytes"
	"fmt"
	"text/template"
)

// Shells lists the shells a wrapper can be generated for
var Shells = []string{"bash", "zsh", "fish"}

const posixWrapper = `# pd shell integration: attaches to the session pd hands over with exit {{.ExitCode}}
{{.Func}}() {
  local __pd_file __pd_rc __pd_target
  __pd_file="$(mktemp "${TMPDIR:-/tmp}/pd-handover.XXXXXX")" || { command {{.Binary}} "$@"; return $?; }
  {{.FileEnv}}="$__pd_file" command {{.Binary}} "$@"
  __pd_rc=$?
  if [ "$__pd_rc" -ne {{.ExitCode}} ]; then
    rm -f "$__pd_file"
    return "$__pd_rc"
  fi
  __pd_target="$(tail -n 1 "$__pd_file")"
  rm -f "$__pd_file"
  if [ -z "$__pd_target" ]; then
    echo "pd: handover requested but no target was reported" >&2
    return 1
  fi
  if ! command -v tmux >/dev/null 2>&1; then
    echo "pd: tmux not found on PATH; cannot attach to {{.Prefix}}$__pd_target" >&2
    return 127
  fi
  if [ -n "$TMUX" ]; then
    tmux switch-client -t "{{.Prefix}}$__pd_target"
  else
    tmux attach-session -t "{{.Prefix}}$__pd_target"
  fi
}
`

const fishWrapper = `# pd shell integration: attaches to the session pd hands over with exit {{.ExitCode}}
function {{.Func}}
    set -l __pd_file (mktemp -t pd-handover.XXXXXX)
    or begin
        command {{.Binary}} $argv
        return $status
    end
    env {{.FileEnv}}=$__pd_file {{.Binary}} $argv
    set -l __pd_rc $status
    if test $__pd_rc -ne {{.ExitCode}}
        rm -f $__pd_file
        return $__pd_rc
    end
    set -l __pd_target (tail -n 1 $__pd_file)
    rm -f $__pd_file
    if test -z "$__pd_target"
        echo "pd: handover requested but no target was reported" >&2
        return 1
    end
    if not command -sq tmux
        echo "pd: tmux not found on PATH; cannot attach to {{.Prefix}}$__pd_target" >&2
        return 127
    end
    if set -q TMUX
        tmux switch-client -t "{{.Prefix}}$__pd_target"
    else
        tmux attach-session -t "{{.Prefix}}$__pd_target"
    end
end
`

type wrapperData struct {
	Binary   string
	ExitCode int
	FileEnv  string
	Func     string
	Prefix   string
}

// Script renders the wrapper function for shell. binary is the command the
// wrapper invokes; the function itself is always named pd.
func Script(shell, binary string) (string, error) {
	var src string
	switch shell {
	case "bash", "zsh":
		src = posixWrapper
	case "fish":
		src = fishWrapper
	default:
		return "", fmt.Errorf("unsupported shell %q (supported: %v)", shell, Shells)
	}
	if binary == "" {
		binary = "pd"
	}

	tmpl, err := template.New(shell).Parse(src)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, wrapperData{
		Binary:   binary,
		ExitCode: ExitCode,
		FileEnv:  FileEnv,
		Func:     "pd",
		Prefix:   SessionPrefix,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
