// Package scheduler runs the background sweeper: stale tasks are failed
// once they exceed the wall-clock budget, and generated artifacts past the
// retention window are pruned.
package scheduler

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"

	"github.com/ritik-gupta001/nexalyze/models"
	"github.com/ritik-gupta001/nexalyze/store"
)

const sweepPageSize = 100

// Sweeper periodically fails over-budget tasks and prunes old artifacts.
type Sweeper struct {
	store     store.TaskStore
	fs        afero.Fs
	dirs      []string
	budget    time.Duration
	retention time.Duration
	now       func() time.Time

	cron    *cron.Cron
	entryID cron.EntryID
}

// New builds a sweeper over the given task store and artifact directories.
func New(st store.TaskStore, fs afero.Fs, dirs []string, budget, retention time.Duration) *Sweeper {
	return &Sweeper{
		store:     st,
		fs:        fs,
		dirs:      dirs,
		budget:    budget,
		retention: retention,
		now:       time.Now,
		cron:      cron.New(),
	}
}

// Start schedules the sweep every minute and starts the cron loop.
func (s *Sweeper) Start() error {
	id, err := s.cron.AddFunc("* * * * *", s.Sweep)
	if err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	s.entryID = id
	s.cron.Start()
	slog.Info("sweeper started", "budget", s.budget, "retention", s.retention)
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("sweeper stopped")
}

// Sweep runs one pass: fail stale tasks, then prune expired artifacts.
func (s *Sweeper) Sweep() {
	failed := s.failStaleTasks()
	pruned := s.pruneArtifacts()
	if failed > 0 || pruned > 0 {
		slog.Info("sweep finished", "tasks_failed", failed, "artifacts_pruned", pruned)
	}
}

// failStaleTasks commits the failed state on every pending or processing
// task whose age exceeds the budget. Each task gets exactly one terminal
// write, same as a pipeline failure.
func (s *Sweeper) failStaleTasks() int {
	cutoff := s.now().UTC().Add(-s.budget)
	failed := 0
	for _, status := range []models.TaskStatus{models.StatusPending, models.StatusProcessing} {
		for page := 1; ; page++ {
			tasks, _, err := s.store.List(store.ListFilter{Status: status}, page, sweepPageSize)
			if err != nil {
				slog.Error("sweep list failed", "status", status, "error", err)
				break
			}
			for _, task := range tasks {
				if !task.CreatedAt.Before(cutoff) {
					continue
				}
				task.Status = models.StatusFailed
				task.Error = fmt.Sprintf("task exceeded %s wall-clock budget", s.budget)
				done := s.now().UTC()
				task.CompletedAt = &done
				if err := s.store.Update(task); err != nil {
					slog.Error("failed to commit stale task", "task_id", task.TaskID, "error", err)
					continue
				}
				slog.Warn("stale task failed", "task_id", task.TaskID, "age", s.now().Sub(task.CreatedAt))
				failed++
			}
			if len(tasks) < sweepPageSize {
				break
			}
		}
	}
	return failed
}

// pruneArtifacts removes chart and report files older than the retention
// window. Missing directories are skipped.
func (s *Sweeper) pruneArtifacts() int {
	cutoff := s.now().Add(-s.retention)
	pruned := 0
	for _, dir := range s.dirs {
		entries, err := afero.ReadDir(s.fs, dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !entry.ModTime().Before(cutoff) {
				continue
			}
			name := filepath.Join(dir, entry.Name())
			if err := s.fs.Remove(name); err != nil {
				slog.Error("prune failed", "file", name, "error", err)
				continue
			}
			slog.Debug("pruned artifact", "file", name)
			pruned++
		}
	}
	return pruned
}
