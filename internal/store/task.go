package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskward/taskward-api/internal/domain"
)

// TaskStore defines the interface for task data persistence. The four listing
// operations are named explicitly; callers select among them with a plain
// conditional rather than composing filters dynamically.
type TaskStore interface {
	// FindByID retrieves a task by its unique ID, including the owner's
	// username. Returns ErrTaskNotFound if the task does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Task, error)

	// Save persists the task. A task without an ID is inserted and the
	// storage-assigned ID is written back; a task with an ID is updated in
	// place. The owner reference is set on insert and never changed by an
	// update. Returns ErrTaskNotFound when updating a task that no longer
	// exists.
	Save(ctx context.Context, task *domain.Task) error

	// Delete removes the task from the store.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, task *domain.Task) error

	// FindByCompleted returns one page of tasks with the given completion
	// state, together with the total match count.
	FindByCompleted(ctx context.Context, completed bool, req PageRequest) (Page[domain.Task], error)

	// FindByDueDateBefore returns one page of tasks due strictly before the
	// cutoff.
	FindByDueDateBefore(ctx context.Context, cutoff time.Time, req PageRequest) (Page[domain.Task], error)

	// FindByCompletedAndDueDateBefore returns one page of tasks matching both
	// the completion state and the due-date cutoff.
	FindByCompletedAndDueDateBefore(
		ctx context.Context,
		completed bool,
		cutoff time.Time,
		req PageRequest,
	) (Page[domain.Task], error)

	// FindAll returns one unfiltered page of tasks.
	FindAll(ctx context.Context, req PageRequest) (Page[domain.Task], error)

	// WithTx returns a TaskStore that runs its operations on the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
