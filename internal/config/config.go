package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings is the resolved application configuration.
type Settings struct {
	LLM      LLMSettings
	News     NewsSettings
	Server   ServerSettings
	Storage  StorageSettings
	Pipeline PipelineSettings
}

// LLMSettings configures the language generation capability. An empty API key
// (for providers that need one) leaves the capability absent, in which case
// every caller uses its deterministic fallback.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// NewsSettings configures the news source. Without an API key the
// deterministic mock source is wired in.
type NewsSettings struct {
	APIKey  string
	BaseURL string
}

type ServerSettings struct {
	Port int
}

type StorageSettings struct {
	DataDir    string
	ChartsDir  string
	ReportsDir string
	ModelsDir  string
}

type PipelineSettings struct {
	ForecastDays          int
	MaxArticles           int
	TaskBudgetMinutes     int
	ArtifactRetentionDays int
}

// SetDefaults registers every default with viper. Called from the root
// command before the config file is read so file/env values win.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", DefaultProvider)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.apiKey", "")
	v.SetDefault("llm.baseURL", "")

	v.SetDefault("news.apiKey", "")
	v.SetDefault("news.baseURL", "https://newsapi.org/v2")

	v.SetDefault("server.port", DefaultServerPort)

	v.SetDefault("storage.dataDir", DefaultDataDir)
	v.SetDefault("storage.chartsDir", DefaultChartsDir)
	v.SetDefault("storage.reportsDir", DefaultReportsDir)
	v.SetDefault("storage.modelsDir", DefaultModelsDir)

	v.SetDefault("pipeline.forecastDays", DefaultForecastDays)
	v.SetDefault("pipeline.maxArticles", DefaultMaxArticles)
	v.SetDefault("pipeline.taskBudgetMinutes", DefaultTaskBudgetMinutes)
	v.SetDefault("pipeline.artifactRetentionDays", DefaultArtifactRetentionDays)
}

// Load materializes Settings from viper state.
func Load(v *viper.Viper) Settings {
	s := Settings{
		LLM: LLMSettings{
			Provider: v.GetString("llm.provider"),
			Model:    v.GetString("llm.model"),
			APIKey:   v.GetString("llm.apiKey"),
			BaseURL:  v.GetString("llm.baseURL"),
		},
		News: NewsSettings{
			APIKey:  v.GetString("news.apiKey"),
			BaseURL: v.GetString("news.baseURL"),
		},
		Server: ServerSettings{
			Port: v.GetInt("server.port"),
		},
		Storage: StorageSettings{
			DataDir:    v.GetString("storage.dataDir"),
			ChartsDir:  v.GetString("storage.chartsDir"),
			ReportsDir: v.GetString("storage.reportsDir"),
			ModelsDir:  v.GetString("storage.modelsDir"),
		},
		Pipeline: PipelineSettings{
			ForecastDays:          v.GetInt("pipeline.forecastDays"),
			MaxArticles:           v.GetInt("pipeline.maxArticles"),
			TaskBudgetMinutes:     v.GetInt("pipeline.taskBudgetMinutes"),
			ArtifactRetentionDays: v.GetInt("pipeline.artifactRetentionDays"),
		},
	}
	if s.LLM.Model == "" {
		s.LLM.Model = DefaultModelForProvider(s.LLM.Provider)
	}
	return s
}

// ChartsPath returns the absolute-ish path charts are written under.
func (s Settings) ChartsPath() string {
	return filepath.Join(s.Storage.DataDir, s.Storage.ChartsDir)
}

// ReportsPath returns the path reports are written under.
func (s Settings) ReportsPath() string {
	return filepath.Join(s.Storage.DataDir, s.Storage.ReportsDir)
}

// ModelsPath returns the path persisted ML models live under.
func (s Settings) ModelsPath() string {
	return filepath.Join(s.Storage.DataDir, s.Storage.ModelsDir)
}
