package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// ErrorPrefix starts every placeholder stored when no SITREP could be made
const ErrorPrefix = "Error generating SITREP: "

// APIKeyEnv holds the OpenAI credential
const APIKeyEnv = "OPENAI_API_KEY"

// Config controls provider choice, retries, fallback and spend
type Config struct {
	CostPer1KTokens     float64
	FallbackModel       string
	FallbackProvider    string
	MaxRetries          int
	Model               string
	MonthlyBudgetUSD    float64
	OllamaBackoff       time.Duration
	OllamaTimeout       time.Duration
	OllamaURL           string
	OpenAIAPIKey        string
	OpenAIMaxTokens     int
	OpenAITimeout       time.Duration
	OpenAIURL           string
	Provider            string
	RequestsPerSecond   float64
	RequireConfirmation bool
}

// Generator implements ports.SitrepGenerator with a primary provider and
// an optional, budgeted OpenAI fallback
type Generator struct {
	cfg     Config
	limiter *rate.Limiter
	now     func() time.Time
	ollama  Completer
	openai  func(model string) (Completer, error)
	usage   ports.UsageRecorder
}

// Verify interface compliance at compile time
var _ ports.SitrepGenerator = (*Generator)(nil)

// NewGenerator creates a Generator backed by langchaingo clients. usage
// may be nil, which disables budget checks and usage logging.
func NewGenerator(cfg Config, usage ports.UsageRecorder) (*Generator, error) {
	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = os.Getenv(APIKeyEnv)
	}

	var ollamaCompleter Completer
	if cfg.Provider != ProviderOpenAI {
		c, err := NewOllamaCompleter(cfg.OllamaURL, cfg.Model, cfg.OllamaTimeout)
		if err != nil {
			return nil, err
		}
		ollamaCompleter = c
	}

	openaiFactory := func(model string) (Completer, error) {
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%s not set", APIKeyEnv)
		}
		return NewOpenAICompleter(cfg.OpenAIURL, cfg.OpenAIAPIKey, model, cfg.OpenAIMaxTokens, cfg.OpenAITimeout)
	}

	return NewGeneratorWithCompleters(cfg, ollamaCompleter, openaiFactory, usage), nil
}

// NewGeneratorWithCompleters wires explicit completers, used by tests
func NewGeneratorWithCompleters(cfg Config, ollama Completer, openai func(model string) (Completer, error), usage ports.UsageRecorder) *Generator {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Generator{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		now:     time.Now,
		ollama:  ollama,
		openai:  openai,
		usage:   usage,
	}
}

// Generate implements SitrepGenerator.Generate
func (g *Generator) Generate(ctx context.Context, req domain.SitrepRequest) domain.Outcome[string] {
	prompt := BuildPrompt(req)

	text, err := g.generate(ctx, req.RepositoryID, prompt)
	if err != nil {
		logging.Logger.Warn("SITREP generation failed", "repo_id", req.RepositoryID, "error", err)
		return domain.Degrade(ErrorPrefix+err.Error(), err.Error())
	}
	return domain.Ok(text)
}

func (g *Generator) generate(ctx context.Context, repoID, prompt string) (string, error) {
	if g.cfg.Provider == ProviderOpenAI {
		return g.callOpenAI(ctx, repoID, g.cfg.Model, prompt)
	}

	text, primaryErr := g.callOllama(ctx, repoID, prompt)
	if primaryErr == nil {
		return text, nil
	}

	if g.cfg.FallbackProvider != ProviderOpenAI {
		return "", primaryErr
	}
	if g.cfg.RequireConfirmation {
		return "", domain.ErrConfirmationRequired
	}

	logging.Logger.Info("Falling back to OpenAI", "repo_id", repoID, "primary_error", primaryErr)
	return g.callOpenAI(ctx, repoID, g.cfg.FallbackModel, prompt)
}

// callOllama retries with exponential backoff: backoff, 2*backoff, 4*backoff...
func (g *Generator) callOllama(ctx context.Context, repoID, prompt string) (string, error) {
	if g.ollama == nil {
		return "", errors.New("ollama provider not configured")
	}

	attempts := g.cfg.MaxRetries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && g.cfg.OllamaBackoff > 0 {
			backoff := g.cfg.OllamaBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}

		callCtx, cancel := withOptionalTimeout(ctx, g.cfg.OllamaTimeout)
		completion, err := g.ollama.Complete(callCtx, SystemPrompt, prompt)
		cancel()

		g.record(ctx, repoID, ProviderOllama, g.cfg.Model, completion, err == nil, 0)
		if err == nil {
			return completion.Text, nil
		}

		lastErr = err
		logging.Logger.Debug("Ollama attempt failed", "attempt", attempt+1, "of", attempts, "error", err)
		if ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (g *Generator) callOpenAI(ctx context.Context, repoID, model, prompt string) (string, error) {
	if g.openai == nil {
		return "", fmt.Errorf("%s not set", APIKeyEnv)
	}
	client, err := g.openai(model)
	if err != nil {
		return "", err
	}

	if err := g.checkBudget(ctx); err != nil {
		return "", err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	callCtx, cancel := withOptionalTimeout(ctx, g.cfg.OpenAITimeout)
	completion, err := client.Complete(callCtx, SystemPrompt, prompt)
	cancel()

	cost := 0.0
	if err == nil {
		cost = EstimateCost(completion.OutputTokens, g.cfg.CostPer1KTokens)
	}
	g.record(ctx, repoID, ProviderOpenAI, model, completion, err == nil, cost)
	if err != nil {
		return "", err
	}

	logging.Logger.Info("OpenAI call logged", "model", model, "output_tokens", completion.OutputTokens, "cost_usd", cost)
	return completion.Text, nil
}

// checkBudget refuses paid calls once month-to-date OpenAI spend reaches the budget
func (g *Generator) checkBudget(ctx context.Context) error {
	if g.usage == nil {
		return nil
	}
	spent, err := g.usage.UsageSince(ctx, ProviderOpenAI, domain.MonthStart(g.now()))
	if err != nil {
		logging.Logger.Warn("Budget check failed, allowing call", "error", err)
		return nil
	}
	if spent.CostUSD >= g.cfg.MonthlyBudgetUSD {
		logging.Logger.Warn("Budget exceeded", "spent_usd", spent.CostUSD, "budget_usd", g.cfg.MonthlyBudgetUSD)
		return fmt.Errorf("%w ($%.2f/$%.2f)", domain.ErrBudgetExceeded, spent.CostUSD, g.cfg.MonthlyBudgetUSD)
	}
	return nil
}

func (g *Generator) record(ctx context.Context, repoID, provider, model string, c Completion, success bool, cost float64) {
	if g.usage == nil {
		return
	}
	usage := domain.AIUsage{
		CostUSD:      cost,
		InputTokens:  c.InputTokens,
		Model:        model,
		OutputTokens: c.OutputTokens,
		Provider:     provider,
		RepositoryID: repoID,
		Success:      success,
		Timestamp:    g.now().UTC(),
	}
	// The call context may already be spent; the record must still land
	if err := g.usage.RecordUsage(context.WithoutCancel(ctx), usage); err != nil {
		logging.Logger.Warn("Failed to record AI usage", "provider", provider, "error", err)
	}
}

// EstimateCost prices a call by its output tokens
func EstimateCost(outputTokens int, costPer1K float64) float64 {
	return float64(outputTokens) / 1000 * costPer1K
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
