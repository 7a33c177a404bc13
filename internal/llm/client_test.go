package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProvider(t *testing.T) {
	for _, p := range []string{"openai", "ollama", "anthropic", "gemini"} {
		got, err := ValidateProvider(p)
		require.NoError(t, err)
		assert.Equal(t, Provider(p), got)
	}

	_, err := ValidateProvider("skynet")
	assert.Error(t, err)
}

func TestNewChatModelRequiresKey(t *testing.T) {
	ctx := context.Background()

	_, err := NewChatModel(ctx, Config{Provider: ProviderOpenAI, Model: "gpt-5-mini"})
	assert.Error(t, err)

	_, err = NewChatModel(ctx, Config{Provider: ProviderAnthropic, Model: "claude-sonnet-4-5"})
	assert.Error(t, err)

	_, err = NewChatModel(ctx, Config{Provider: "unknown"})
	assert.Error(t, err)
}
