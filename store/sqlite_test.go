package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritik-gupta001/nexalyze/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	now := time.Now().UTC().Truncate(time.Millisecond)
	done := now.Add(2 * time.Second)
	task := models.Task{
		TaskID:   "T-20260830-deadbeef",
		Status:   models.StatusCompleted,
		TaskType: models.TypeNewsInsight,
		Query:    "today's big news highlights",
		Summary:  "narrative",
		SentimentSummary: &models.SentimentSummary{
			Positive: 0.6, Neutral: 0.3, Negative: 0.1,
			Overall: "positive", Confidence: 0.6,
		},
		Forecast:    "the trend is improving",
		ReportURL:   "/reports/T-20260830-deadbeef-report.md",
		Charts:      []string{"/charts/a.svg", "/charts/b.svg"},
		Metadata:    map[string]any{"articles_analyzed": float64(5), "entity": "Tesla"},
		CreatedAt:   now,
		CompletedAt: &done,
	}

	require.NoError(t, s.Create(task))

	got, err := s.Get(task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, task.Status, got.Status)
	assert.Equal(t, task.Query, got.Query)
	require.NotNil(t, got.SentimentSummary)
	assert.InDelta(t, 0.6, got.SentimentSummary.Positive, 1e-9)
	assert.Equal(t, "positive", got.SentimentSummary.Overall)
	assert.Equal(t, task.Charts, got.Charts)
	assert.Equal(t, task.Metadata["entity"], got.Metadata["entity"])
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(done))
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdateTerminalTransition(t *testing.T) {
	s := newTestStore(t)

	task := *models.NewTask("T-1", models.TypeDocumentAnalysis)
	require.NoError(t, s.Create(task))

	done := time.Now().UTC()
	task.Status = models.StatusFailed
	task.Error = "document extraction failed: bad input"
	task.CompletedAt = &done
	require.NoError(t, s.Update(task))

	got, err := s.Get("T-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.NotEmpty(t, got.Error)
	assert.NotNil(t, got.CompletedAt)
	assert.Empty(t, got.Summary)
	assert.Nil(t, got.SentimentSummary)
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	task := *models.NewTask("T-2", models.TypeDataAnalysis)
	assert.ErrorIs(t, s.Update(task), ErrTaskNotFound)
}

func TestListPaginationAndFilter(t *testing.T) {
	s := newTestStore(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		task := *models.NewTask("T-list-"+string(rune('a'+i)), models.TypeNewsInsight)
		task.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if i%2 == 0 {
			task.Status = models.StatusCompleted
		}
		require.NoError(t, s.Create(task))
	}

	tasks, total, err := s.List(ListFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, tasks, 2)
	// Newest first.
	assert.Equal(t, "T-list-e", tasks[0].TaskID)
	assert.Equal(t, "T-list-d", tasks[1].TaskID)

	completed, total, err := s.List(ListFilter{Status: models.StatusCompleted}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, completed, 3)
}
