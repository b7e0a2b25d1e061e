package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

// defaults is loaded before the user's file so booleans and numbers have a
// value even when the file omits them.
const defaults = `
system:
  editor_cmd: windsurf
  editor_args: ["-n"]
  shell_cmd: []
  db_path: ""
  log_path: ""
  mock_mode: false
  redact_secrets: true
  ai_provider: ollama
  ai_model: qwen2.5-coder
  ai_fallback_provider: none
  ai_fallback_model: gpt-4o-mini
  ai_require_confirmation: true
  ai_monthly_budget_usd: 10.0
  ai_cost_per_1k_tokens: 0.002
  ai_requests_per_second: 1.0
  ollama_api_url: http://localhost:11434
  ollama_timeout_seconds: 5
  ollama_max_retries: 2
  ollama_backoff_seconds: 0.5
  openai_api_url: https://api.openai.com/v1
  openai_timeout_seconds: 10
  openai_max_tokens: 150
  git_timeout_seconds: 5
  terminal_timeout_seconds: 2
  task_timeout_seconds: 2
  daemon_interval_seconds: 300
  daemon_inactivity_seconds: 1800
  daemon_metrics_addr: ""
`

// System holds the machine-wide settings of the registry file
type System struct {
	AICostPer1KTokens       float64  `koanf:"ai_cost_per_1k_tokens"`
	AIFallbackModel         string   `koanf:"ai_fallback_model"`
	AIFallbackProvider      string   `koanf:"ai_fallback_provider"`
	AIModel                 string   `koanf:"ai_model"`
	AIMonthlyBudgetUSD      float64  `koanf:"ai_monthly_budget_usd"`
	AIProvider              string   `koanf:"ai_provider"`
	AIRequestsPerSecond     float64  `koanf:"ai_requests_per_second"`
	AIRequireConfirmation   bool     `koanf:"ai_require_confirmation"`
	DaemonInactivitySeconds float64  `koanf:"daemon_inactivity_seconds"`
	DaemonIntervalSeconds   float64  `koanf:"daemon_interval_seconds"`
	DaemonMetricsAddr       string   `koanf:"daemon_metrics_addr"`
	DBPath                  string   `koanf:"db_path"`
	EditorArgs              []string `koanf:"editor_args"`
	EditorCmd               string   `koanf:"editor_cmd"`
	GitTimeoutSeconds       float64  `koanf:"git_timeout_seconds"`
	LogPath                 string   `koanf:"log_path"`
	MockMode                bool     `koanf:"mock_mode"`
	OllamaAPIURL            string   `koanf:"ollama_api_url"`
	OllamaBackoffSeconds    float64  `koanf:"ollama_backoff_seconds"`
	OllamaMaxRetries        int      `koanf:"ollama_max_retries"`
	OllamaTimeoutSeconds    float64  `koanf:"ollama_timeout_seconds"`
	OpenAIAPIURL            string   `koanf:"openai_api_url"`
	OpenAIMaxTokens         int      `koanf:"openai_max_tokens"`
	OpenAITimeoutSeconds    float64  `koanf:"openai_timeout_seconds"`
	RedactSecrets           bool     `koanf:"redact_secrets"`
	ShellCmd                []string `koanf:"shell_cmd"`
	TaskTimeoutSeconds      float64  `koanf:"task_timeout_seconds"`
	TerminalTimeoutSeconds  float64  `koanf:"terminal_timeout_seconds"`
}

// Config is the loaded registry file
type Config struct {
	Path   string // File the config was read from; empty when none existed
	Repos  []domain.Repository
	System System
}

// Seconds converts a fractional seconds setting to a duration
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Registry builds the validated repository registry
func (c *Config) Registry() (*domain.Registry, error) {
	return domain.NewRegistry(c.Repos)
}

// Load reads the registry file at path (or the default location when path
// is empty), then applies PD_SYSTEM_* environment overrides.
// A missing file is not an error: defaults with no repositories are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetRegistryPath()
	}
	path = ExpandPath(path)

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(defaults)), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	cfg := &Config{}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		cfg.Path = path
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// PD_SYSTEM_DB_PATH -> system.db_path
	if err := k.Load(env.Provider("PD_SYSTEM_", ".", func(s string) string {
		return "system." + strings.ToLower(strings.TrimPrefix(s, "PD_SYSTEM_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	if err := k.Unmarshal("system", &cfg.System); err != nil {
		return nil, fmt.Errorf("invalid system settings: %w", err)
	}
	normalizeSystem(&cfg.System)

	baseDir := filepath.Dir(path)
	repos, err := parseRepos(k.Get("repos"), baseDir)
	if err != nil {
		return nil, err
	}
	cfg.Repos = repos

	if _, err := cfg.Registry(); err != nil {
		return nil, fmt.Errorf("invalid repository registry: %w", err)
	}

	return cfg, nil
}

func normalizeSystem(s *System) {
	if s.DBPath == "" {
		s.DBPath = GetDBPath()
	}
	s.DBPath = ExpandPath(s.DBPath)
	if s.LogPath == "" {
		s.LogPath = GetLogPath()
	}
	s.LogPath = ExpandPath(s.LogPath)
	s.ShellCmd = splitSingleCommand(s.ShellCmd)
	s.EditorArgs = splitSingleCommand(s.EditorArgs)
	s.AIProvider = strings.ToLower(strings.TrimSpace(s.AIProvider))
	s.AIFallbackProvider = strings.ToLower(strings.TrimSpace(s.AIFallbackProvider))
}

// splitSingleCommand turns ["uv shell"] (as produced by a scalar or an env
// override) into ["uv", "shell"].
func splitSingleCommand(args []string) []string {
	if len(args) == 1 && strings.ContainsAny(args[0], " \t") {
		return strings.Fields(args[0])
	}
	return args
}

// parseRepos accepts either a list of entries or a map keyed by id
func parseRepos(raw any, baseDir string) ([]domain.Repository, error) {
	var repos []domain.Repository

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("repos[%d]: expected a mapping", i)
			}
			repo, err := repoFromMap(m, "", baseDir)
			if err != nil {
				return nil, fmt.Errorf("repos[%d]: %w", i, err)
			}
			repos = append(repos, repo)
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			m, ok := v[key].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("repos.%s: expected a mapping", key)
			}
			repo, err := repoFromMap(m, key, baseDir)
			if err != nil {
				return nil, fmt.Errorf("repos.%s: %w", key, err)
			}
			repos = append(repos, repo)
		}
	default:
		return nil, fmt.Errorf("repos: expected a list or a mapping, got %T", raw)
	}

	return repos, nil
}

func repoFromMap(m map[string]any, key, baseDir string) (domain.Repository, error) {
	repo := domain.Repository{
		ActiveBranch: stringField(m, "active_branch"),
		ID:           stringField(m, "id"),
		Path:         stringField(m, "path"),
	}
	if key != "" {
		repo.ID = key
	}
	if repo.ID == "" {
		return repo, fmt.Errorf("missing id")
	}
	if repo.Path == "" {
		return repo, fmt.Errorf("missing path")
	}
	if repo.ActiveBranch == "" {
		repo.ActiveBranch = "main"
	}

	priority, err := intField(m, "priority")
	if err != nil {
		return repo, err
	}
	repo.Priority = priority

	repo.Path = ExpandPath(repo.Path)
	if !filepath.IsAbs(repo.Path) {
		repo.Path = filepath.Join(baseDir, repo.Path)
	}
	repo.Path = filepath.Clean(repo.Path)
	return repo, nil
}

func stringField(m map[string]any, name string) string {
	if v, ok := m[name]; ok && v != nil {
		return strings.TrimSpace(fmt.Sprint(v))
	}
	return ""
}

func intField(m map[string]any, name string) (int, error) {
	switch v := m[name].(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s: unsupported type %T", name, v)
	}
}
