package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Provider names accepted in configuration
const (
	ProviderNone   = "none"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// ErrEmptyResponse is returned when a provider answers with no text
var ErrEmptyResponse = errors.New("no content in AI response")

// Completion is one model answer with its token accounting
type Completion struct {
	InputTokens  int
	OutputTokens int
	Text         string
}

// Completer sends one system+user exchange to a model
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (Completion, error)
}

// llmCompleter adapts a langchaingo model to Completer
type llmCompleter struct {
	maxTokens int
	model     llms.Model
}

// NewOllamaCompleter creates a Completer for an Ollama server
func NewOllamaCompleter(serverURL, model string, timeout time.Duration) (Completer, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(strings.TrimSuffix(serverURL, "/")),
		ollama.WithModel(model),
		ollama.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating Ollama client: %w", err)
	}
	return &llmCompleter{model: llm}, nil
}

// NewOpenAICompleter creates a Completer for an OpenAI-compatible API
func NewOpenAICompleter(baseURL, apiKey, model string, maxTokens int, timeout time.Duration) (Completer, error) {
	llm, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
		openai.WithToken(apiKey),
		openai.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}
	return &llmCompleter{maxTokens: maxTokens, model: llm}, nil
}

func (c *llmCompleter) Complete(ctx context.Context, system, prompt string) (Completion, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}

	var opts []llms.CallOption
	if c.maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(c.maxTokens))
	}

	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return Completion{}, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return Completion{}, ErrEmptyResponse
	}

	choice := resp.Choices[0]
	text := strings.TrimSpace(choice.Content)
	if text == "" {
		return Completion{}, ErrEmptyResponse
	}

	out := Completion{
		InputTokens:  tokenCount(choice.GenerationInfo, "PromptTokens"),
		OutputTokens: tokenCount(choice.GenerationInfo, "CompletionTokens"),
		Text:         text,
	}
	if out.InputTokens == 0 {
		out.InputTokens = estimateTokens(system) + estimateTokens(prompt)
	}
	if out.OutputTokens == 0 {
		out.OutputTokens = estimateTokens(text)
	}
	return out, nil
}

// tokenCount reads a provider-reported count, which may arrive as any numeric type
func tokenCount(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// estimateTokens approximates a token count at four characters per token
func estimateTokens(s string) int {
	if s == "" {
		return 0
	}
	return (len(s) + 3) / 4
}
