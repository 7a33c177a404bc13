package genai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritik-gupta001/nexalyze/models"
)

func disabledCompleter() *Completer {
	return NewCompleterWithModel(nil)
}

func TestInterpretQueryFallbackCascades(t *testing.T) {
	c := disabledCompleter()
	ctx := context.Background()

	cases := []struct {
		query     string
		taskType  models.TaskType
		focus     string
		timeRange string
		actions   []string
	}{
		{
			query:     "today's big news highlights",
			taskType:  models.TypeNewsInsight,
			focus:     "highlights",
			timeRange: "today",
			actions:   []string{"search_news", "analyze_sentiment", "predict_trends", "generate_report"},
		},
		{
			query:     "sentiment on Tesla stock this week",
			taskType:  models.TypeNewsInsight,
			focus:     "sentiment",
			timeRange: "last_7_days",
			actions:   []string{"search_news", "analyze_sentiment", "predict_trends", "generate_report"},
		},
		{
			query:     "summarize this pdf paper",
			taskType:  models.TypeDocumentAnalysis,
			focus:     "comprehensive",
			timeRange: "last_7_days",
			actions:   []string{"extract_text", "summarize_text", "generate_report"},
		},
		{
			query:     "monthly trends in my csv dataset",
			taskType:  models.TypeDataAnalysis,
			focus:     "trends",
			timeRange: "last_30_days",
			actions:   []string{"load_data", "analyze_patterns", "visualize_data", "generate_report"},
		},
		{
			query:     "tell me about quantum computing",
			taskType:  models.TypeGeneralResearch,
			focus:     "comprehensive",
			timeRange: "last_7_days",
			actions:   []string{"research", "summarize", "generate_report"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			plan := c.InterpretQuery(ctx, tc.query)
			assert.Equal(t, tc.taskType, plan.TaskType)
			assert.Equal(t, tc.focus, plan.AnalysisFocus)
			assert.Equal(t, tc.timeRange, plan.TimeRange)
			assert.Equal(t, tc.actions, plan.Actions)
			assert.Equal(t, tc.query, plan.UserIntent)
			assert.NotNil(t, plan.Parameters)
		})
	}
}

func TestInterpretQueryEntityTruncation(t *testing.T) {
	c := disabledCompleter()
	long := strings.Repeat("x", 250) + " news"
	plan := c.InterpretQuery(context.Background(), long)
	assert.Len(t, plan.Entity, 100)
	assert.Equal(t, long, plan.UserIntent)
}

func TestInterpretQueryEarlierKeywordWins(t *testing.T) {
	// "recent" beats "week" because the time cascade checks it first.
	c := disabledCompleter()
	plan := c.InterpretQuery(context.Background(), "recent news this week")
	assert.Equal(t, "last_3_days", plan.TimeRange)
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence with prose", "Here you go:\n```json\n{\"a\": 1}\n```\nDone.", `{"a": 1}`},
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"unterminated fence", "```json\n{\"a\": 1}", `{"a": 1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripFences(tc.in))
		})
	}
}

func TestInterpretNeverReturnsEmptyPlan(t *testing.T) {
	c := disabledCompleter()
	plan := c.InterpretQuery(context.Background(), "")
	require.NotEmpty(t, plan.TaskType)
	assert.Equal(t, models.TypeGeneralResearch, plan.TaskType)
	assert.Equal(t, "last_7_days", plan.TimeRange)
}
