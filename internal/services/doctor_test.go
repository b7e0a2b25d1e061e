package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImmortalDemonGod/prime-directive/internal/adapters/tmux"
	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/handover"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
	portsmocks "github.com/ImmortalDemonGod/prime-directive/internal/ports/mocks"
)

func checksByName(checks []DoctorCheck) map[string]DoctorCheck {
	out := make(map[string]DoctorCheck, len(checks))
	for _, c := range checks {
		out[c.Name] = c
	}
	return out
}

func TestDoctor_HealthyInstallation(t *testing.T) {
	ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"qwen2.5-coder:latest"}]}`))
	}))
	defer ollama.Close()

	home := t.TempDir()
	rc, _, err := handover.Install(home, "bash", "pd")
	require.NoError(t, err)
	repoDir := t.TempDir()

	svc := NewDoctorService(tmux.NewMemoryClient(""), DoctorConfig{
		AIModel:       "qwen2.5-coder",
		AIProvider:    "ollama",
		EditorResolve: func() (string, bool) { return "/usr/bin/code", true },
		OllamaURL:     ollama.URL,
		RCFile:        rc,
		Repos:         []domain.Repository{{ID: "alpha", Path: repoDir}},
	})
	svc.lookPath = func(string) (string, error) { return "/usr/bin/ollama", nil }

	checks := svc.Run(context.Background())
	byName := checksByName(checks)

	assert.True(t, Healthy(checks))
	assert.Equal(t, CheckOK, byName["tmux"].Status)
	assert.Equal(t, "/usr/bin/code", byName["editor"].Detail)
	assert.Equal(t, CheckOK, byName["ollama"].Status)
	assert.Contains(t, byName["ollama"].Detail, "qwen2.5-coder:latest")
	assert.Equal(t, CheckOK, byName["repo alpha"].Status)
	assert.Equal(t, CheckOK, byName["shell"].Status)
}

func TestDoctor_ReportsProblems(t *testing.T) {
	client := portsmocks.NewMockTmuxClient(t)
	client.EXPECT().Available().Return(ports.ErrTmuxNotInstalled)

	missing := filepath.Join(t.TempDir(), "gone")
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	svc := NewDoctorService(client, DoctorConfig{
		AIFallbackProvider: "openai",
		AIModel:            "qwen2.5-coder",
		AIProvider:         "ollama",
		EditorResolve:      func() (string, bool) { return "", false },
		OllamaURL:          "http://127.0.0.1:1",
		OpenAIKeyEnv:       "OPENAI_API_KEY",
		RCFile:             filepath.Join(t.TempDir(), ".zshrc"),
		Repos: []domain.Repository{
			{ID: "gone", Path: missing},
			{ID: "file", Path: file},
		},
	})
	svc.getenv = func(string) string { return "" }
	svc.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	checks := svc.Run(context.Background())
	byName := checksByName(checks)

	assert.False(t, Healthy(checks))
	assert.Equal(t, CheckFail, byName["tmux"].Status)
	assert.Equal(t, CheckWarn, byName["editor"].Status)
	assert.Equal(t, CheckWarn, byName["ollama"].Status)
	assert.Equal(t, CheckWarn, byName["openai"].Status)
	assert.Equal(t, CheckFail, byName["repo gone"].Status)
	assert.Equal(t, CheckFail, byName["repo file"].Status)
	assert.Equal(t, CheckWarn, byName["shell"].Status)
}

func TestDoctor_MissingModel(t *testing.T) {
	ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3:8b"}]}`))
	}))
	defer ollama.Close()

	svc := NewDoctorService(tmux.NewMemoryClient(""), DoctorConfig{
		AIModel:    "qwen2.5-coder",
		AIProvider: "ollama",
		OllamaURL:  ollama.URL,
	})
	svc.lookPath = func(string) (string, error) { return "/usr/bin/ollama", nil }

	byName := checksByName(svc.Run(context.Background()))

	assert.Equal(t, CheckWarn, byName["ollama"].Status)
	assert.Contains(t, byName["ollama"].Detail, "ollama pull qwen2.5-coder")
}
