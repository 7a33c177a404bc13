// Package orchestrator drives the analysis pipelines end to end: it creates
// the task record, runs the pipeline stages, and commits exactly one
// terminal state per task.
package orchestrator

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ritik-gupta001/nexalyze/internal/docs"
	"github.com/ritik-gupta001/nexalyze/internal/genai"
	"github.com/ritik-gupta001/nexalyze/internal/ml"
	"github.com/ritik-gupta001/nexalyze/internal/news"
	"github.com/ritik-gupta001/nexalyze/internal/report"
	"github.com/ritik-gupta001/nexalyze/internal/viz"
	"github.com/ritik-gupta001/nexalyze/models"
	"github.com/ritik-gupta001/nexalyze/store"
)

// Orchestrator wires the pipeline tools together over a task store.
type Orchestrator struct {
	store     store.TaskStore
	completer *genai.Completer
	sentiment *ml.SentimentEngine
	forecast  *ml.ForecastEngine
	source    news.Source
	docs      *docs.Registry
	charts    viz.Renderer
	reports   *report.Generator

	maxArticles  int
	forecastDays int
}

// Config collects the orchestrator's collaborators.
type Config struct {
	Store     store.TaskStore
	Completer *genai.Completer
	Sentiment *ml.SentimentEngine
	Forecast  *ml.ForecastEngine
	Source    news.Source
	Docs      *docs.Registry
	Charts    viz.Renderer
	Reports   *report.Generator

	MaxArticles  int
	ForecastDays int
}

// New builds an orchestrator. Zero limits fall back to 10 articles and a
// 7-day forecast horizon.
func New(cfg Config) *Orchestrator {
	o := &Orchestrator{
		store:        cfg.Store,
		completer:    cfg.Completer,
		sentiment:    cfg.Sentiment,
		forecast:     cfg.Forecast,
		source:       cfg.Source,
		docs:         cfg.Docs,
		charts:       cfg.Charts,
		reports:      cfg.Reports,
		maxArticles:  cfg.MaxArticles,
		forecastDays: cfg.ForecastDays,
	}
	if o.maxArticles <= 0 {
		o.maxArticles = 10
	}
	if o.forecastDays <= 0 {
		o.forecastDays = 7
	}
	slog.Info("orchestrator initialized")
	return o
}

// NewTaskID mints a task identifier: T-<date>-<8 hex chars>.
func NewTaskID() string {
	return fmt.Sprintf("T-%s-%s", time.Now().UTC().Format("20060102"), uuid.NewString()[:8])
}

// fail commits the failed terminal state and returns the pipeline error to
// the caller. The commit itself is best-effort: a store error at this point
// is logged, not returned, so the original failure is what surfaces.
func (o *Orchestrator) fail(task *models.Task, err error) error {
	task.Status = models.StatusFailed
	task.Error = err.Error()
	now := time.Now().UTC()
	task.CompletedAt = &now
	if uerr := o.store.Update(*task); uerr != nil {
		slog.Error("failed to commit task failure", "task_id", task.TaskID, "error", uerr)
	}
	return err
}

// complete commits the completed terminal state.
func (o *Orchestrator) complete(task *models.Task) error {
	task.Status = models.StatusCompleted
	now := time.Now().UTC()
	task.CompletedAt = &now
	if err := o.store.Update(*task); err != nil {
		return fmt.Errorf("commit task completion: %w", err)
	}
	return nil
}

// clipText truncates s to at most n bytes.
func clipText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// comma renders n with thousands separators.
func comma(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
