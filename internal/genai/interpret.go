package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ritik-gupta001/nexalyze/models"
)

// InterpretQuery turns a free-text request into a structured plan. It never
// fails: model errors, unparseable output, and unknown task types all route
// to the deterministic rule-based interpretation.
func (c *Completer) InterpretQuery(ctx context.Context, query string) models.TaskPlan {
	if !c.Enabled() {
		return fallbackInterpret(query)
	}

	content, err := c.generate(ctx, "You are a task planning expert.", fmt.Sprintf(taskInterpreterPrompt, query))
	if err != nil {
		slog.Error("task interpretation failed", "error", err)
		return fallbackInterpret(query)
	}

	var plan models.TaskPlan
	if err := json.Unmarshal([]byte(stripFences(content)), &plan); err != nil {
		slog.Error("task plan parse failed", "error", err)
		return fallbackInterpret(query)
	}
	switch plan.TaskType {
	case models.TypeNewsInsight, models.TypeDocumentAnalysis, models.TypeDataAnalysis, models.TypeGeneralResearch:
	default:
		slog.Error("task plan has unknown task type", "task_type", plan.TaskType)
		return fallbackInterpret(query)
	}
	if plan.Parameters == nil {
		plan.Parameters = map[string]any{}
	}
	slog.Info("task interpreted", "task_type", plan.TaskType)
	return plan
}

// fallbackInterpret classifies a query with keyword cascades: analysis focus,
// time range, then task type with its fixed action list. The first matching
// branch in each cascade wins.
func fallbackInterpret(query string) models.TaskPlan {
	lower := strings.ToLower(query)

	var focus string
	switch {
	case containsAny(lower, "highlight", "headlines", "top news", "breaking", "major"):
		focus = "highlights"
	case containsAny(lower, "sentiment", "feeling", "opinion", "perception"):
		focus = "sentiment"
	case containsAny(lower, "trend", "pattern", "direction", "momentum"):
		focus = "trends"
	default:
		focus = "comprehensive"
	}

	var timeRange string
	switch {
	case containsAny(lower, "today", "today's", "current"):
		timeRange = "today"
	case containsAny(lower, "recent", "latest", "past few days"):
		timeRange = "last_3_days"
	case containsAny(lower, "week", "weekly"):
		timeRange = "last_7_days"
	case containsAny(lower, "month", "monthly"):
		timeRange = "last_30_days"
	default:
		timeRange = "last_7_days"
	}

	var taskType models.TaskType
	var actions []string
	switch {
	case containsAny(lower, "news", "article", "sentiment", "stock", "market"):
		taskType = models.TypeNewsInsight
		actions = []string{"search_news", "analyze_sentiment", "predict_trends", "generate_report"}
	case containsAny(lower, "pdf", "document", "paper", "file"):
		taskType = models.TypeDocumentAnalysis
		actions = []string{"extract_text", "summarize_text", "generate_report"}
	case containsAny(lower, "csv", "excel", "data", "dataset"):
		taskType = models.TypeDataAnalysis
		actions = []string{"load_data", "analyze_patterns", "visualize_data", "generate_report"}
	default:
		taskType = models.TypeGeneralResearch
		actions = []string{"research", "summarize", "generate_report"}
	}

	return models.TaskPlan{
		TaskType:      taskType,
		Entity:        clip(query, 100),
		UserIntent:    query,
		AnalysisFocus: focus,
		Actions:       actions,
		TimeRange:     timeRange,
		Parameters:    map[string]any{},
	}
}

func containsAny(lower string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
