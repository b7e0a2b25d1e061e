package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ImmortalDemonGod/prime-directive/internal/config"
)

func TestAITimeout(t *testing.T) {
	base := config.System{
		AIFallbackProvider:   "none",
		AIProvider:           "ollama",
		OllamaBackoffSeconds: 0.5,
		OllamaMaxRetries:     2,
		OllamaTimeoutSeconds: 5,
		OpenAITimeoutSeconds: 10,
	}

	assert.Equal(t, 18500*time.Millisecond, aiTimeout(base))

	withFallback := base
	withFallback.AIFallbackProvider = "openai"
	assert.Equal(t, 28500*time.Millisecond, aiTimeout(withFallback))

	openai := base
	openai.AIProvider = "openai"
	assert.Equal(t, 12*time.Second, aiTimeout(openai))
}
