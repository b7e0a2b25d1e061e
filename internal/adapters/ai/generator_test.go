package ai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

type fakeCompleter struct {
	calls   int
	errs    []error
	mu      sync.Mutex
	prompts []string
	text    string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string) (Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return Completion{}, err
		}
	}
	return Completion{InputTokens: 100, OutputTokens: 500, Text: f.text}, nil
}

type fakeUsage struct {
	mu      sync.Mutex
	records []domain.AIUsage
	spent   float64
}

func (f *fakeUsage) RecordUsage(ctx context.Context, u domain.AIUsage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, u)
	return nil
}

func (f *fakeUsage) UsageSince(ctx context.Context, provider string, since time.Time) (domain.UsageSummary, error) {
	return domain.UsageSummary{CostUSD: f.spent, Provider: provider}, nil
}

func openaiFactory(c Completer) func(string) (Completer, error) {
	return func(string) (Completer, error) { return c, nil }
}

func baseConfig() Config {
	return Config{
		CostPer1KTokens:   0.002,
		FallbackModel:     "gpt-4o-mini",
		FallbackProvider:  ProviderNone,
		MaxRetries:        2,
		Model:             "qwen2.5-coder",
		MonthlyBudgetUSD:  10,
		Provider:          ProviderOllama,
		RequestsPerSecond: 1000,
	}
}

func request() domain.SitrepRequest {
	return domain.SitrepRequest{
		Git:          domain.GitStatus{Branch: "main"},
		Human:        domain.HumanContext{Blocker: "flaky CI", Objective: "ship the parser"},
		RepositoryID: "alpha",
		Task:         &domain.Task{ID: "4", Title: "Parser"},
		Terminal:     domain.TerminalCapture{Output: "$ go test ./...\nFAIL"},
	}
}

func TestGenerate_OllamaSuccess(t *testing.T) {
	ollama := &fakeCompleter{text: "Working on the parser. NEXT STEP: fix CI."}
	usage := &fakeUsage{}
	g := NewGeneratorWithCompleters(baseConfig(), ollama, nil, usage)

	out := g.Generate(context.Background(), request())

	require.False(t, out.Degraded, out.Reason)
	assert.Equal(t, "Working on the parser. NEXT STEP: fix CI.", out.Value)
	assert.Contains(t, ollama.prompts[0], "Objective: ship the parser")
	assert.Contains(t, ollama.prompts[0], "Blocker: flaky CI")
	require.Len(t, usage.records, 1)
	assert.Equal(t, ProviderOllama, usage.records[0].Provider)
	assert.Zero(t, usage.records[0].CostUSD)
}

func TestGenerate_OllamaRetriesThenSucceeds(t *testing.T) {
	ollama := &fakeCompleter{errs: []error{errors.New("connection refused"), nil}, text: "ok"}
	g := NewGeneratorWithCompleters(baseConfig(), ollama, nil, nil)

	out := g.Generate(context.Background(), request())

	assert.False(t, out.Degraded)
	assert.Equal(t, 2, ollama.calls)
}

func TestGenerate_OllamaFailsWithoutFallback(t *testing.T) {
	boom := errors.New("connection refused")
	ollama := &fakeCompleter{errs: []error{boom, boom, boom}}
	g := NewGeneratorWithCompleters(baseConfig(), ollama, nil, nil)

	out := g.Generate(context.Background(), request())

	assert.True(t, out.Degraded)
	assert.Equal(t, "Error generating SITREP: connection refused", out.Value)
	assert.Equal(t, 3, ollama.calls)
}

func TestGenerate_FallbackRequiresConfirmation(t *testing.T) {
	cfg := baseConfig()
	cfg.FallbackProvider = ProviderOpenAI
	cfg.RequireConfirmation = true
	cfg.MaxRetries = 0
	openai := &fakeCompleter{text: "should not be called"}
	g := NewGeneratorWithCompleters(cfg, &fakeCompleter{errs: []error{errors.New("down")}}, openaiFactory(openai), nil)

	out := g.Generate(context.Background(), request())

	assert.True(t, out.Degraded)
	assert.Equal(t, "Error generating SITREP: OpenAI fallback requires confirmation", out.Value)
	assert.Zero(t, openai.calls)
}

func TestGenerate_FallbackToOpenAILogsUsage(t *testing.T) {
	cfg := baseConfig()
	cfg.FallbackProvider = ProviderOpenAI
	cfg.MaxRetries = 0
	openai := &fakeCompleter{text: "fallback sitrep"}
	usage := &fakeUsage{}
	g := NewGeneratorWithCompleters(cfg, &fakeCompleter{errs: []error{errors.New("down")}}, openaiFactory(openai), usage)

	out := g.Generate(context.Background(), request())

	require.False(t, out.Degraded, out.Reason)
	assert.Equal(t, "fallback sitrep", out.Value)
	require.Len(t, usage.records, 2)
	paid := usage.records[1]
	assert.Equal(t, ProviderOpenAI, paid.Provider)
	assert.Equal(t, "gpt-4o-mini", paid.Model)
	assert.True(t, paid.Success)
	assert.InDelta(t, 0.001, paid.CostUSD, 1e-9)
}

func TestGenerate_BudgetExceeded(t *testing.T) {
	cfg := baseConfig()
	cfg.Provider = ProviderOpenAI
	cfg.Model = "gpt-4o-mini"
	openai := &fakeCompleter{text: "unused"}
	usage := &fakeUsage{spent: 10.5}
	g := NewGeneratorWithCompleters(cfg, nil, openaiFactory(openai), usage)

	out := g.Generate(context.Background(), request())

	assert.True(t, out.Degraded)
	assert.True(t, strings.HasPrefix(out.Value, ErrorPrefix))
	assert.Contains(t, out.Value, "budget exceeded")
	assert.Zero(t, openai.calls)
	assert.Empty(t, usage.records)
}

func TestGenerate_OpenAIFailureIsLogged(t *testing.T) {
	cfg := baseConfig()
	cfg.Provider = ProviderOpenAI
	openai := &fakeCompleter{errs: []error{errors.New("401 unauthorized")}}
	usage := &fakeUsage{}
	g := NewGeneratorWithCompleters(cfg, nil, openaiFactory(openai), usage)

	out := g.Generate(context.Background(), request())

	assert.True(t, out.Degraded)
	require.Len(t, usage.records, 1)
	assert.False(t, usage.records[0].Success)
	assert.Zero(t, usage.records[0].CostUSD)
}

func TestGenerate_OpenAIMissingKey(t *testing.T) {
	cfg := baseConfig()
	cfg.Provider = ProviderOpenAI
	g := NewGeneratorWithCompleters(cfg, nil, func(string) (Completer, error) {
		return nil, errors.New("OPENAI_API_KEY not set")
	}, nil)

	out := g.Generate(context.Background(), request())

	assert.Equal(t, "Error generating SITREP: OPENAI_API_KEY not set", out.Value)
}

func TestBuildPrompt_WithoutOptionalContext(t *testing.T) {
	prompt := BuildPrompt(domain.SitrepRequest{RepositoryID: "beta", Git: domain.GitStatus{Branch: "dev"}})

	assert.Contains(t, prompt, "- Repository: beta")
	assert.Contains(t, prompt, "- Human Context:\nNone")
	assert.Contains(t, prompt, "- Active Task:\nNone")
	assert.Contains(t, prompt, "Branch: dev")
}

func TestEstimateCost(t *testing.T) {
	assert.InDelta(t, 0.002, EstimateCost(1000, 0.002), 1e-12)
	assert.Zero(t, EstimateCost(0, 0.002))
}

func TestMockGenerator(t *testing.T) {
	out := MockGenerator{}.Generate(context.Background(), domain.SitrepRequest{})

	assert.False(t, out.Degraded)
	assert.Equal(t, MockSummary, out.Value)
}
