package store

import (
	"errors"

	"github.com/ritik-gupta001/nexalyze/models"
)

// ErrTaskNotFound is returned when a task id does not exist in the store.
var ErrTaskNotFound = errors.New("task not found")

// ListFilter narrows List results. Zero value means no filtering.
type ListFilter struct {
	Status models.TaskStatus
}

// TaskStore defines the interface for task persistence. The orchestrator
// writes through it exactly twice per task in the normal case: once at
// creation (the record arrives already in the processing state) and once at
// the terminal transition.
type TaskStore interface {
	// Create inserts a new task record. It fails if the id already exists.
	Create(task models.Task) error

	// Update replaces the stored record for task.TaskID with the given task.
	// It returns ErrTaskNotFound if no such record exists.
	Update(task models.Task) error

	// Get retrieves a task by id, or ErrTaskNotFound.
	Get(id string) (models.Task, error)

	// List returns one page of tasks ordered by creation time descending,
	// plus the total count matching the filter. Pages are 1-based.
	List(filter ListFilter, page, pageSize int) ([]models.Task, int, error)

	// Close releases the underlying database handle.
	Close() error
}
