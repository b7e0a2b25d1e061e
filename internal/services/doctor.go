package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/handover"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// CheckStatus is the result of one doctor check
type CheckStatus string

const (
	CheckFail CheckStatus = "fail"
	CheckOK   CheckStatus = "ok"
	CheckWarn CheckStatus = "warn"
)

// DoctorCheck is one line of `pd doctor`
type DoctorCheck struct {
	Detail string
	Name   string
	Status CheckStatus
}

// DoctorConfig carries the settings the doctor validates
type DoctorConfig struct {
	AIFallbackProvider string
	AIModel            string
	AIProvider         string
	EditorResolve      func() (string, bool)
	MockMode           bool
	OllamaURL          string
	OpenAIKeyEnv       string
	RCFile             string
	Repos              []domain.Repository
}

// DoctorService diagnoses the local installation
type DoctorService struct {
	client   *http.Client
	config   DoctorConfig
	getenv   func(string) string
	lookPath func(string) (string, error)
	tmux     ports.TmuxClient
}

// NewDoctorService creates a new DoctorService
func NewDoctorService(tmux ports.TmuxClient, config DoctorConfig) *DoctorService {
	return &DoctorService{
		client:   &http.Client{Timeout: 2 * time.Second},
		config:   config,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		tmux:     tmux,
	}
}

// Run executes every check in display order
func (d *DoctorService) Run(ctx context.Context) []DoctorCheck {
	var checks []DoctorCheck
	checks = append(checks, d.checkTmux())
	checks = append(checks, d.checkEditor())
	checks = append(checks, d.checkAI(ctx)...)
	checks = append(checks, d.checkRepos()...)
	checks = append(checks, d.checkShellIntegration())
	return checks
}

// Healthy reports whether no check failed
func Healthy(checks []DoctorCheck) bool {
	for _, c := range checks {
		if c.Status == CheckFail {
			return false
		}
	}
	return true
}

func (d *DoctorService) checkTmux() DoctorCheck {
	if err := d.tmux.Available(); err != nil {
		return DoctorCheck{Detail: err.Error(), Name: "tmux", Status: CheckFail}
	}
	if d.config.MockMode {
		return DoctorCheck{Detail: "mock mode, in-memory sessions", Name: "tmux", Status: CheckOK}
	}
	return DoctorCheck{Detail: "installed", Name: "tmux", Status: CheckOK}
}

func (d *DoctorService) checkEditor() DoctorCheck {
	if d.config.EditorResolve == nil {
		return DoctorCheck{Detail: "disabled", Name: "editor", Status: CheckOK}
	}
	editor, ok := d.config.EditorResolve()
	if !ok {
		return DoctorCheck{Detail: "no editor found on PATH", Name: "editor", Status: CheckWarn}
	}
	return DoctorCheck{Detail: editor, Name: "editor", Status: CheckOK}
}

func (d *DoctorService) checkAI(ctx context.Context) []DoctorCheck {
	if d.config.MockMode {
		return []DoctorCheck{{Detail: "mock mode, fixed summaries", Name: "ai", Status: CheckOK}}
	}

	var checks []DoctorCheck
	if d.config.AIProvider == "ollama" {
		checks = append(checks, d.checkOllama(ctx)...)
	}
	if d.config.AIProvider == "openai" || d.config.AIFallbackProvider == "openai" {
		if d.getenv(d.config.OpenAIKeyEnv) == "" {
			status := CheckWarn
			if d.config.AIProvider == "openai" {
				status = CheckFail
			}
			checks = append(checks, DoctorCheck{Detail: d.config.OpenAIKeyEnv + " not set", Name: "openai", Status: status})
		} else {
			checks = append(checks, DoctorCheck{Detail: d.config.OpenAIKeyEnv + " set", Name: "openai", Status: CheckOK})
		}
	}
	return checks
}

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

func (d *DoctorService) checkOllama(ctx context.Context) []DoctorCheck {
	var checks []DoctorCheck
	if _, err := d.lookPath("ollama"); err != nil {
		checks = append(checks, DoctorCheck{Detail: "ollama not on PATH", Name: "ollama", Status: CheckWarn})
	}

	url := strings.TrimRight(d.config.OllamaURL, "/") + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return append(checks, DoctorCheck{Detail: err.Error(), Name: "ollama", Status: CheckFail})
	}
	req.Close = true
	resp, err := d.client.Do(req)
	if err != nil {
		return append(checks, DoctorCheck{Detail: "not running at " + d.config.OllamaURL, Name: "ollama", Status: CheckWarn})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return append(checks, DoctorCheck{Detail: fmt.Sprintf("%s returned %s", url, resp.Status), Name: "ollama", Status: CheckWarn})
	}

	var tags ollamaTags
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return append(checks, DoctorCheck{Detail: "unreadable model list: " + err.Error(), Name: "ollama", Status: CheckWarn})
	}
	for _, m := range tags.Models {
		if m.Name == d.config.AIModel || strings.HasPrefix(m.Name, d.config.AIModel+":") {
			return append(checks, DoctorCheck{Detail: "running, model " + m.Name + " present", Name: "ollama", Status: CheckOK})
		}
	}
	return append(checks, DoctorCheck{
		Detail: fmt.Sprintf("model %s missing (ollama pull %s)", d.config.AIModel, d.config.AIModel),
		Name:   "ollama",
		Status: CheckWarn,
	})
}

func (d *DoctorService) checkRepos() []DoctorCheck {
	if len(d.config.Repos) == 0 {
		return []DoctorCheck{{Detail: "no repositories registered", Name: "repos", Status: CheckWarn}}
	}
	var checks []DoctorCheck
	for _, repo := range d.config.Repos {
		name := "repo " + repo.ID
		info, err := os.Stat(repo.Path)
		switch {
		case err != nil:
			checks = append(checks, DoctorCheck{Detail: repo.Path + " not found", Name: name, Status: CheckFail})
		case !info.IsDir():
			checks = append(checks, DoctorCheck{Detail: repo.Path + " is not a directory", Name: name, Status: CheckFail})
		default:
			checks = append(checks, DoctorCheck{Detail: repo.Path, Name: name, Status: CheckOK})
		}
	}
	return checks
}

func (d *DoctorService) checkShellIntegration() DoctorCheck {
	if d.config.RCFile == "" {
		return DoctorCheck{Detail: "unknown shell, see pd shell-init", Name: "shell", Status: CheckWarn}
	}
	ok, err := handover.IsInstalled(d.config.RCFile)
	if err != nil || !ok {
		return DoctorCheck{Detail: "not installed in " + d.config.RCFile + " (pd shell-init --install)", Name: "shell", Status: CheckWarn}
	}
	return DoctorCheck{Detail: d.config.RCFile, Name: "shell", Status: CheckOK}
}
