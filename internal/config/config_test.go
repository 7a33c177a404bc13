package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s := Load(v)
	assert.Equal(t, DefaultProvider, s.LLM.Provider)
	assert.Equal(t, DefaultOpenAIModel, s.LLM.Model) // filled from provider default
	assert.Equal(t, DefaultServerPort, s.Server.Port)
	assert.Equal(t, DefaultForecastDays, s.Pipeline.ForecastDays)
	assert.Equal(t, filepath.Join(DefaultDataDir, DefaultChartsDir), s.ChartsPath())
}

func TestLoadRespectsOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("llm.provider", ProviderOllama)
	v.Set("server.port", 9001)

	s := Load(v)
	assert.Equal(t, ProviderOllama, s.LLM.Provider)
	assert.Equal(t, DefaultOllamaModel, s.LLM.Model)
	assert.Equal(t, 9001, s.Server.Port)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nexalyze.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	// Refuses to overwrite.
	require.Error(t, WriteDefaultConfig(path))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, DefaultProvider, v.GetString("llm.provider"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
