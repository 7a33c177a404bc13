package server

import (
	"net/http"

	"github.com/spf13/afero"
)

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /tasks/analyze-text", s.handleAnalyzeText)
	mux.HandleFunc("POST /tasks/analyze-doc", s.handleAnalyzeDoc)
	mux.HandleFunc("POST /tasks/analyze-data", s.handleAnalyzeData)
	mux.HandleFunc("GET /tasks/{id}", s.handleGetTask)
	mux.HandleFunc("GET /tasks", s.handleListTasks)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	charts := http.FileServer(afero.NewHttpFs(afero.NewBasePathFs(s.fs, s.chartsDir)))
	reports := http.FileServer(afero.NewHttpFs(afero.NewBasePathFs(s.fs, s.reportsDir)))
	mux.Handle("GET /charts/", http.StripPrefix("/charts/", charts))
	mux.Handle("GET /reports/", http.StripPrefix("/reports/", reports))

	return corsMiddleware(mux)
}
