package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/ritik-gupta001/nexalyze/internal/config"
	"github.com/ritik-gupta001/nexalyze/internal/docs"
	"github.com/ritik-gupta001/nexalyze/internal/genai"
	"github.com/ritik-gupta001/nexalyze/internal/ml"
	"github.com/ritik-gupta001/nexalyze/internal/news"
	"github.com/ritik-gupta001/nexalyze/internal/orchestrator"
	"github.com/ritik-gupta001/nexalyze/internal/report"
	"github.com/ritik-gupta001/nexalyze/internal/viz"
	"github.com/ritik-gupta001/nexalyze/store"
)

// app bundles the wired pipeline collaborators for a command invocation.
type app struct {
	settings config.Settings
	store    store.TaskStore
	orch     *orchestrator.Orchestrator
	fs       afero.Fs
}

// buildApp wires the store, engines, and orchestrator from resolved settings.
func buildApp(ctx context.Context) (*app, error) {
	settings := GetSettings()
	fs := afero.NewOsFs()

	st, err := store.NewSQLiteStore(settings.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open task store: %w", err)
	}

	sentiment, err := ml.NewSentimentEngine(fs, filepath.Join(settings.ModelsPath(), "sentiment.json"))
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("init sentiment engine: %w", err)
	}

	var source news.Source
	if settings.News.APIKey != "" {
		source = news.NewLiveSource(settings.News.APIKey, settings.News.BaseURL)
	} else {
		slog.Info("no news API key configured, using generated articles")
		source = news.NewMockSource()
	}

	orch := orchestrator.New(orchestrator.Config{
		Store:        st,
		Completer:    genai.NewCompleter(ctx, settings.LLM),
		Sentiment:    sentiment,
		Forecast:     ml.NewForecastEngine(),
		Source:       source,
		Docs:         docs.NewRegistry(),
		Charts:       viz.NewSVGRenderer(fs, settings.ChartsPath()),
		Reports:      report.NewGenerator(fs, settings.ReportsPath()),
		MaxArticles:  settings.Pipeline.MaxArticles,
		ForecastDays: settings.Pipeline.ForecastDays,
	})

	return &app{
		settings: settings,
		store:    st,
		orch:     orch,
		fs:       fs,
	}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
}
