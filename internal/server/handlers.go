package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ritik-gupta001/nexalyze/internal/config"
	"github.com/ritik-gupta001/nexalyze/internal/orchestrator"
	"github.com/ritik-gupta001/nexalyze/models"
	"github.com/ritik-gupta001/nexalyze/store"
)

// maxUploadBytes caps document and dataset uploads.
const maxUploadBytes = 32 << 20

// handleAnalyzeText
func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	task, err := s.orch.ExecuteTextAnalysis(r.Context(), orchestrator.NewTaskID(), req.Query, req.Entity, req.TimeRange)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeAPIJSON(w, task)
}

// handleAnalyzeDoc
func (s *Server) handleAnalyzeDoc(w http.ResponseWriter, r *http.Request) {
	content, filename, instruction, ok := readUpload(w, r)
	if !ok {
		return
	}

	task, err := s.orch.ExecuteDocumentAnalysis(r.Context(), orchestrator.NewTaskID(), content, filename, instruction)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeAPIJSON(w, task)
}

// handleAnalyzeData
func (s *Server) handleAnalyzeData(w http.ResponseWriter, r *http.Request) {
	content, filename, instruction, ok := readUpload(w, r)
	if !ok {
		return
	}

	task, err := s.orch.ExecuteDataAnalysis(r.Context(), orchestrator.NewTaskID(), content, filename, instruction)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeAPIJSON(w, task)
}

// handleGetTask
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	task, err := s.store.Get(id)
	if err != nil {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	writeAPIJSON(w, task)
}

// handleListTasks
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var filter store.ListFilter
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = models.TaskStatus(status)
	}

	tasks, total, err := s.store.List(filter, page, pageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	writeAPIJSON(w, TaskListResponse{
		Tasks:    tasks,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// handleHealth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, HealthResponse{
		Status:    "healthy",
		App:       config.AppName,
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// readUpload pulls the file and optional instruction out of a multipart
// form. On failure it writes the error response and returns ok=false.
func readUpload(w http.ResponseWriter, r *http.Request) (content []byte, filename, instruction string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return nil, "", "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return nil, "", "", false
	}
	defer func() { _ = file.Close() }()

	content, err = io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return nil, "", "", false
	}

	return content, header.Filename, r.FormValue("instruction"), true
}

// writePipelineError maps pipeline errors onto status codes: rejected
// inputs are the caller's fault, everything else is ours.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrUnsupportedInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeAPIJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
