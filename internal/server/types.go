package server

import "github.com/ritik-gupta001/nexalyze/models"

// AnalyzeTextRequest is the payload for POST /tasks/analyze-text
type AnalyzeTextRequest struct {
	Query     string `json:"query"`
	Entity    string `json:"entity,omitempty"`
	TimeRange string `json:"time_range,omitempty"`
}

// TaskListResponse is the response for GET /tasks
type TaskListResponse struct {
	Tasks    []models.Task `json:"tasks"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// HealthResponse is the response for GET /healthz
type HealthResponse struct {
	Status    string `json:"status"`
	App       string `json:"app"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}
