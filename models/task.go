package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the lifecycle state of an analysis task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusProcessing TaskStatus = "processing"
	StatusCompleted  TaskStatus = "completed"
	StatusFailed     TaskStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// TaskType identifies which analysis pipeline a task runs through.
type TaskType string

const (
	TypeNewsInsight      TaskType = "news_insight"
	TypeDocumentAnalysis TaskType = "document_analysis"
	TypeDataAnalysis     TaskType = "data_analysis"
	TypeGeneralResearch  TaskType = "general_research"
)

// ErrUnsupportedInput marks inputs rejected before a task record exists
// (unrecognized file extension). It is an immediate rejection, distinct from
// a failed task.
var ErrUnsupportedInput = errors.New("unsupported input")

// SentimentSummary is a probability distribution over the three sentiment
// classes. Positive+Neutral+Negative sums to 1 within floating tolerance;
// Overall is the argmax label and Confidence the winning probability.
type SentimentSummary struct {
	Positive   float64 `json:"positive" validate:"gte=0,lte=1"`
	Neutral    float64 `json:"neutral" validate:"gte=0,lte=1"`
	Negative   float64 `json:"negative" validate:"gte=0,lte=1"`
	Overall    string  `json:"overall" validate:"required,oneof=positive neutral negative"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

// TaskPlan is the structured interpretation of a free-text request. It is
// produced by the interpreter and consumed immediately by the orchestrator;
// it is never persisted on its own.
type TaskPlan struct {
	TaskType      TaskType       `json:"task_type"`
	Entity        string         `json:"entity"`
	UserIntent    string         `json:"user_intent"`
	AnalysisFocus string         `json:"analysis_focus"`
	Actions       []string       `json:"actions"`
	TimeRange     string         `json:"time_range"`
	Parameters    map[string]any `json:"parameters"`
}

// Task is one unit of requested analysis work with a persisted lifecycle.
// CompletedAt is set if and only if the status is terminal, and Error is
// non-empty if and only if the status is failed.
type Task struct {
	TaskID   string     `json:"task_id" validate:"required"`
	Status   TaskStatus `json:"status" validate:"required,oneof=pending processing completed failed"`
	TaskType TaskType   `json:"task_type" validate:"required,oneof=news_insight document_analysis data_analysis general_research"`

	Query       string `json:"query,omitempty"`
	Instruction string `json:"instruction,omitempty"`

	Summary          string            `json:"summary,omitempty"`
	SentimentSummary *SentimentSummary `json:"sentiment_summary,omitempty"`
	Forecast         string            `json:"forecast,omitempty"`

	ReportURL string         `json:"report_url,omitempty"`
	Charts    []string       `json:"charts,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Error     string         `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"created_at" validate:"required"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

var validate = validator.New()

// ValidateStruct runs validator tags over any tagged struct and flattens the
// failures into one error.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// NewTask builds a task record in the processing state. The pending->processing
// transition is collapsed into the creation write: the record the store first
// sees is already processing.
func NewTask(id string, taskType TaskType) *Task {
	return &Task{
		TaskID:    id,
		Status:    StatusProcessing,
		TaskType:  taskType,
		CreatedAt: time.Now().UTC(),
	}
}
