package config

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// WriteDefaultConfig materializes a starter config file at path. It refuses
// to overwrite an existing file.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	defaults := map[string]any{
		"llm": map[string]any{
			"provider": DefaultProvider,
			"model":    "",
			"apiKey":   "",
			"baseURL":  "",
		},
		"news": map[string]any{
			"apiKey":  "",
			"baseURL": "https://newsapi.org/v2",
		},
		"server": map[string]any{
			"port": DefaultServerPort,
		},
		"storage": map[string]any{
			"dataDir":    DefaultDataDir,
			"chartsDir":  DefaultChartsDir,
			"reportsDir": DefaultReportsDir,
			"modelsDir":  DefaultModelsDir,
		},
		"pipeline": map[string]any{
			"forecastDays":          DefaultForecastDays,
			"maxArticles":           DefaultMaxArticles,
			"taskBudgetMinutes":     DefaultTaskBudgetMinutes,
			"artifactRetentionDays": DefaultArtifactRetentionDays,
		},
	}

	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
