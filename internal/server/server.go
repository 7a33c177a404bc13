// Package server exposes the analysis pipelines over HTTP: task submission,
// task retrieval, and static serving of generated charts and reports.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/spf13/afero"

	"github.com/ritik-gupta001/nexalyze/internal/orchestrator"
	"github.com/ritik-gupta001/nexalyze/store"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

type Server struct {
	store      store.TaskStore
	orch       *orchestrator.Orchestrator
	fs         afero.Fs
	chartsDir  string
	reportsDir string
	port       int
	server     *http.Server
}

// New wires the API over a task store and an orchestrator. Charts and
// reports are served from the given directories on the provided filesystem.
func New(port int, st store.TaskStore, orch *orchestrator.Orchestrator, fs afero.Fs, chartsDir, reportsDir string) *Server {
	s := &Server{
		store:      st,
		orch:       orch,
		fs:         fs,
		chartsDir:  chartsDir,
		reportsDir: reportsDir,
		port:       port,
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.registerRoutes(),
	}

	return s
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
