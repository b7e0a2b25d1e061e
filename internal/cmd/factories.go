package cmd

import (
	"os"
	"path/filepath"
	"time"

	adapterai "github.com/ImmortalDemonGod/prime-directive/internal/adapters/ai"
	adaptereditor "github.com/ImmortalDemonGod/prime-directive/internal/adapters/editor"
	adaptergit "github.com/ImmortalDemonGod/prime-directive/internal/adapters/git"
	adapterstorage "github.com/ImmortalDemonGod/prime-directive/internal/adapters/storage"
	adaptertasks "github.com/ImmortalDemonGod/prime-directive/internal/adapters/tasks"
	adapterterminal "github.com/ImmortalDemonGod/prime-directive/internal/adapters/terminal"
	adaptertmux "github.com/ImmortalDemonGod/prime-directive/internal/adapters/tmux"
	"github.com/ImmortalDemonGod/prime-directive/internal/config"
	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/handover"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
	"github.com/ImmortalDemonGod/prime-directive/internal/services"
)

// mockPaneOutput is the scrollback the in-memory tmux client returns
const mockPaneOutput = "$ go test ./...\nok  \tmock\t0.01s\n$ git status\n"

// aiTimeoutMargin is added on top of the provider budget
const aiTimeoutMargin = 2 * time.Second

// closeGrace bounds how long Close waits for timed-out collaborators to
// finish writing before the store goes away
const closeGrace = 3 * time.Second

// Container holds all dependencies for the application
type Container struct {
	Config   *config.Config
	Registry *domain.Registry
	Store    *adapterstorage.SQLiteStore
	Tmux     ports.TmuxClient

	// Services
	CollectorService *services.SnapshotCollector
	DoctorService    *services.DoctorService
	FreezeService    *services.FreezeService
	KPIService       *services.KPIService
	SessionPreparer  *services.SessionPreparer
	StatusService    *services.StatusService
	SwitchService    *services.SwitchService
	UsageService     *services.UsageService

	// Internal - for cleanup only
	engines *adapterstorage.EngineRegistry
}

// NewContainer creates a new Container with all dependencies wired.
// In mock mode tmux, terminal capture, the editor and AI are replaced
// with in-process fakes; git and tasks stay real.
func NewContainer(cfg *config.Config) (*Container, error) {
	sys := cfg.System

	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	engines := adapterstorage.NewEngineRegistry()
	store, err := engines.Get(sys.DBPath)
	if err != nil {
		return nil, err
	}

	launcher := adaptereditor.NewLauncher(sys.EditorCmd, sys.EditorArgs)

	var (
		tmuxClient ports.TmuxClient
		editor     ports.EditorLauncher
		sitrep     ports.SitrepGenerator
	)
	if sys.MockMode {
		logging.Logger.Info("Mock mode enabled")
		tmuxClient = adaptertmux.NewMemoryClient(mockPaneOutput)
		editor = adaptereditor.NoopLauncher{}
		sitrep = adapterai.MockGenerator{}
	} else {
		tmuxClient = adaptertmux.NewClient()
		editor = launcher
		generator, err := adapterai.NewGenerator(aiConfig(sys), store)
		if err != nil {
			_ = engines.CloseAll()
			return nil, err
		}
		sitrep = generator
	}

	var redactor *adapterterminal.Redactor
	if sys.RedactSecrets {
		redactor = adapterterminal.NewRedactor()
	}

	timeouts := services.CollectorTimeouts{
		AI:       aiTimeout(sys),
		Git:      config.Seconds(sys.GitTimeoutSeconds),
		Task:     config.Seconds(sys.TaskTimeoutSeconds),
		Terminal: config.Seconds(sys.TerminalTimeoutSeconds),
	}

	// The collector's budget sits slightly above each adapter's own timeout
	collector := services.NewSnapshotCollector(
		adaptergit.NewInspector(timeouts.Git),
		adapterterminal.NewCapturer(tmuxClient, redactor, timeouts.Terminal),
		adaptertasks.NewReader(timeouts.Task),
		sitrep,
		withSlack(timeouts),
	)
	freezeService := services.NewFreezeService(collector, store)
	sessionPreparer := services.NewSessionPreparer(tmuxClient, sys.ShellCmd)

	doctorService := services.NewDoctorService(tmuxClient, services.DoctorConfig{
		AIFallbackProvider: sys.AIFallbackProvider,
		AIModel:            sys.AIModel,
		AIProvider:         sys.AIProvider,
		EditorResolve:      launcher.Resolve,
		MockMode:           sys.MockMode,
		OllamaURL:          sys.OllamaAPIURL,
		OpenAIKeyEnv:       adapterai.APIKeyEnv,
		RCFile:             userRCFile(),
		Repos:              registry.All(),
	})

	return &Container{
		CollectorService: collector,
		Config:           cfg,
		DoctorService:    doctorService,
		FreezeService:    freezeService,
		KPIService:       services.NewKPIService(store),
		Registry:         registry,
		SessionPreparer:  sessionPreparer,
		StatusService:    services.NewStatusService(registry, adaptergit.NewInspector(timeouts.Git), store, tmuxClient),
		Store:            store,
		SwitchService:    services.NewSwitchService(registry, freezeService, sessionPreparer, editor, store),
		Tmux:             tmuxClient,
		UsageService:     services.NewUsageService(store, sys.AIMonthlyBudgetUSD),
		engines:          engines,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.CollectorService != nil {
		c.CollectorService.Wait(closeGrace)
	}
	if c.engines != nil {
		return c.engines.CloseAll()
	}
	return nil
}

func aiConfig(sys config.System) adapterai.Config {
	return adapterai.Config{
		CostPer1KTokens:     sys.AICostPer1KTokens,
		FallbackModel:       sys.AIFallbackModel,
		FallbackProvider:    sys.AIFallbackProvider,
		MaxRetries:          sys.OllamaMaxRetries,
		Model:               sys.AIModel,
		MonthlyBudgetUSD:    sys.AIMonthlyBudgetUSD,
		OllamaBackoff:       config.Seconds(sys.OllamaBackoffSeconds),
		OllamaTimeout:       config.Seconds(sys.OllamaTimeoutSeconds),
		OllamaURL:           sys.OllamaAPIURL,
		OpenAIMaxTokens:     sys.OpenAIMaxTokens,
		OpenAITimeout:       config.Seconds(sys.OpenAITimeoutSeconds),
		OpenAIURL:           sys.OpenAIAPIURL,
		Provider:            sys.AIProvider,
		RequestsPerSecond:   sys.AIRequestsPerSecond,
		RequireConfirmation: sys.AIRequireConfirmation,
	}
}

// aiTimeout bounds the whole SITREP step: every ollama attempt with its
// backoff, plus the OpenAI fallback when one is configured.
func aiTimeout(sys config.System) time.Duration {
	openaiTimeout := config.Seconds(sys.OpenAITimeoutSeconds)
	if sys.AIProvider == "openai" {
		return openaiTimeout + aiTimeoutMargin
	}

	ollamaTimeout := config.Seconds(sys.OllamaTimeoutSeconds)
	backoff := config.Seconds(sys.OllamaBackoffSeconds)
	total := ollamaTimeout
	for n := 1; n <= sys.OllamaMaxRetries; n++ {
		total += ollamaTimeout + backoff*time.Duration(1<<(n-1))
	}
	if sys.AIFallbackProvider == "openai" {
		total += openaiTimeout
	}
	return total + aiTimeoutMargin
}

func withSlack(t services.CollectorTimeouts) services.CollectorTimeouts {
	const slack = 500 * time.Millisecond
	return services.CollectorTimeouts{
		AI:       t.AI,
		Git:      t.Git + slack,
		Task:     t.Task + slack,
		Terminal: t.Terminal + slack,
	}
}

// userRCFile returns the rc file of the user's login shell, or "" when the
// shell is not one the wrapper supports
func userRCFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	rc, err := handover.RCFile(home, filepath.Base(os.Getenv("SHELL")))
	if err != nil {
		return ""
	}
	return rc
}
