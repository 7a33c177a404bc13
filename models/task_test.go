package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskStartsProcessing(t *testing.T) {
	task := NewTask("T-20260830-abcd1234", TypeNewsInsight)

	assert.Equal(t, StatusProcessing, task.Status)
	assert.False(t, task.Status.Terminal())
	assert.Nil(t, task.CompletedAt)
	require.NoError(t, ValidateStruct(task))
}

func TestStatusTerminal(t *testing.T) {
	cases := map[TaskStatus]bool{
		StatusPending:    false,
		StatusProcessing: false,
		StatusCompleted:  true,
		StatusFailed:     true,
	}
	for status, want := range cases {
		if got := status.Terminal(); got != want {
			t.Errorf("Terminal(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestValidateStructRejectsBadStatus(t *testing.T) {
	task := &Task{
		TaskID:    "T-1",
		Status:    TaskStatus("exploded"),
		TaskType:  TypeDataAnalysis,
		CreatedAt: time.Now(),
	}
	err := ValidateStruct(task)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status")
}

func TestValidateSentimentSummaryBounds(t *testing.T) {
	good := SentimentSummary{Positive: 0.5, Neutral: 0.3, Negative: 0.2, Overall: "positive", Confidence: 0.5}
	require.NoError(t, ValidateStruct(good))

	bad := SentimentSummary{Positive: 1.5, Neutral: 0.3, Negative: 0.2, Overall: "positive", Confidence: 0.5}
	require.Error(t, ValidateStruct(bad))
}
