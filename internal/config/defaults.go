// Package config provides centralized configuration constants and the
// viper-backed settings loader for nexalyze. All default values live here so
// there is a single source of truth.
package config

// Application identity.
const (
	AppName = "nexalyze"

	// EnvPrefix is the prefix for environment variable overrides
	// (e.g. NEXALYZE_SERVER_PORT).
	EnvPrefix = "NEXALYZE"
)

// LLM provider constants.
const (
	// DefaultProvider is the default LLM provider.
	DefaultProvider = "openai"

	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Default model constants for each provider.
const (
	DefaultOpenAIModel    = "gpt-5-mini-2025-08-07"
	DefaultOllamaModel    = "llama3.2"
	DefaultAnthropicModel = "claude-sonnet-4-5"
	DefaultGeminiModel    = "gemini-2.5-flash"
)

// DefaultOllamaURL is the default URL for an Ollama server.
const DefaultOllamaURL = "http://localhost:11434"

// Pipeline defaults.
const (
	// DefaultTimeRange is used when a query carries no time hint.
	DefaultTimeRange = "last_7_days"

	// DefaultForecastDays is the horizon for sentiment trend forecasts.
	DefaultForecastDays = 7

	// DefaultMaxArticles caps how many articles a news search returns.
	DefaultMaxArticles = 10
)

// Server and storage defaults.
const (
	DefaultServerPort = 8000

	DefaultDataDir    = ".nexalyze"
	DefaultChartsDir  = "charts"
	DefaultReportsDir = "reports"
	DefaultModelsDir  = "ml_models"

	// DefaultTaskBudget is the wall-clock budget (in minutes) after which the
	// sweeper commits a stuck task as failed.
	DefaultTaskBudgetMinutes = 15

	// DefaultArtifactRetentionDays is how long generated charts and reports
	// are kept before the sweeper prunes them.
	DefaultArtifactRetentionDays = 30
)

// DefaultModelForProvider returns the default chat model for a provider.
func DefaultModelForProvider(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return DefaultOpenAIModel
	case ProviderOllama:
		return DefaultOllamaModel
	case ProviderAnthropic:
		return DefaultAnthropicModel
	case ProviderGemini:
		return DefaultGeminiModel
	default:
		return ""
	}
}
