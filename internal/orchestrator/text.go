package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ritik-gupta001/nexalyze/internal/ml"
	"github.com/ritik-gupta001/nexalyze/internal/news"
	"github.com/ritik-gupta001/nexalyze/internal/report"
	"github.com/ritik-gupta001/nexalyze/models"
)

// ExecuteTextAnalysis runs the news-insight pipeline: interpret the query,
// retrieve articles, score sentiment, forecast the trend, produce the
// narrative analysis and report. The returned task reflects the committed
// terminal state; on failure the pipeline error is returned alongside the
// failed task.
func (o *Orchestrator) ExecuteTextAnalysis(ctx context.Context, taskID, query, entity, timeRange string) (models.Task, error) {
	task := models.NewTask(taskID, models.TypeNewsInsight)
	task.Query = query
	if err := o.store.Create(*task); err != nil {
		return *task, fmt.Errorf("create task record: %w", err)
	}

	slog.Info("starting text analysis", "task_id", taskID)

	plan := o.completer.InterpretQuery(ctx, query)
	if entity == "" {
		entity = plan.Entity
		if entity == "" {
			entity = clipText(query, 50)
		}
	}
	intent := plan.UserIntent
	if intent == "" {
		intent = query
	}
	focus := plan.AnalysisFocus
	if focus == "" {
		focus = "comprehensive"
	}
	if plan.TimeRange != "" {
		timeRange = plan.TimeRange
	}
	if timeRange == "" {
		timeRange = "last_7_days"
	}

	slog.Info("query interpreted", "focus", focus, "entity", entity, "time_range", timeRange)

	articles, err := o.source.Search(ctx, entity, timeRange, o.maxArticles)
	if err != nil {
		return *task, o.fail(task, fmt.Errorf("search news: %w", err))
	}

	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = a.Content
	}
	results := o.sentiment.BatchPredict(texts)
	agg := ml.Aggregate(results)
	summary := &models.SentimentSummary{
		Positive:   agg.Positive,
		Neutral:    agg.Neutral,
		Negative:   agg.Negative,
		Overall:    agg.Label,
		Confidence: agg.Confidence,
	}

	var charts []string
	if url, err := o.charts.SentimentChart(taskID, results, entity); err != nil {
		slog.Error("sentiment chart failed", "task_id", taskID, "error", err)
	} else if url != "" {
		charts = append(charts, url)
	}

	var forecastText string
	if len(results) >= 3 {
		forecastText = o.forecast.ForecastSentiment(results, o.forecastDays)

		historical := make([]float64, len(results))
		for i, r := range results {
			historical[i] = r.Positive
		}
		predictions, _ := o.forecast.PredictTrend(historical, o.forecastDays)
		if url, err := o.charts.TrendChart(taskID, historical, predictions, entity); err != nil {
			slog.Error("trend chart failed", "task_id", taskID, "error", err)
		} else if url != "" {
			charts = append(charts, url)
		}
	}

	analysis := o.completer.AnalyzeNews(ctx, entity, news.FormatArticles(articles), intent, focus)

	sentimentText := report.FormatSentimentSummary(*summary)
	reportBody := o.completer.ComposeReport(ctx, query, analysis, sentimentText, forecastText, focus)

	reportURL, err := o.reports.Generate(taskID, fmt.Sprintf("Analysis Report: %s", entity), reportBody, charts)
	if err != nil {
		return *task, o.fail(task, fmt.Errorf("generate report: %w", err))
	}

	task.Summary = analysis
	task.SentimentSummary = summary
	task.Forecast = forecastText
	task.ReportURL = reportURL
	task.Charts = charts
	task.Metadata = map[string]any{
		"articles_analyzed": len(articles),
		"entity":            entity,
		"time_range":        timeRange,
	}
	if err := o.complete(task); err != nil {
		return *task, err
	}

	slog.Info("text analysis completed", "task_id", taskID)
	return *task, nil
}
