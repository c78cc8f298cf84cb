package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/taskward/taskward-api/internal/domain"
	"github.com/taskward/taskward-api/internal/either"
	"github.com/taskward/taskward-api/internal/platform/logger"
	"github.com/taskward/taskward-api/internal/store"
)

// TaskView is the read projection of a task returned by lookups and
// listings. The owner is deliberately absent: it is never exposed.
type TaskView struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// NewTaskView projects a stored task into its response shape.
func NewTaskView(task domain.Task) TaskView {
	return TaskView{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Completed:   task.Completed,
		DueDate:     task.DueDate,
	}
}

// CreateTaskInput carries the fields for a new task.
type CreateTaskInput struct {
	Name        string
	Description string
	DueDate     *time.Time
	Owner       string
}

// UpdateTaskInput carries the optional fields of a partial update. Empty
// strings and a nil due date mean "leave the stored value unchanged".
type UpdateTaskInput struct {
	Name        string
	Description string
	DueDate     *time.Time
}

// ListTasksFilter holds the optional listing filters. Which combination is
// present decides which storage lookup runs.
type ListTasksFilter struct {
	Completed     *bool
	DueDateBefore *time.Time
}

// TaskService enforces ownership rules on task mutations and dispatches
// filtered, paginated task lookups.
type TaskService interface {
	// CreateTask validates the input, resolves the owner, and persists a new
	// task. Returns domain.ErrBadRequest for an empty name and
	// domain.ErrUserNotExists when the owner is unknown.
	CreateTask(ctx context.Context, input CreateTaskInput) error

	// GetTask is an unauthenticated read by id.
	GetTask(ctx context.Context, id int64) either.Either[error, TaskView]

	// ListTasks returns one page of task views matching the filter.
	ListTasks(
		ctx context.Context,
		filter ListTasksFilter,
		req store.PageRequest,
	) either.Either[error, store.Page[TaskView]]

	// UpdateTask applies a partial update to a task owned by actingUsername.
	UpdateTask(ctx context.Context, id int64, input UpdateTaskInput, actingUsername string) error

	// DeleteTask removes a task owned by actingUsername.
	DeleteTask(ctx context.Context, id int64, actingUsername string) error

	// CompleteTask marks a task owned by actingUsername as completed.
	// Completing an already-completed task succeeds.
	CompleteTask(ctx context.Context, id int64, actingUsername string) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	db *sql.DB,
	log *slog.Logger,
) TaskService {
	if log == nil {
		log = slog.Default()
	}
	return &taskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		db:        db,
		logger:    log.With(slog.String("component", "task_service")),
	}
}

// CreateTask implements TaskService.CreateTask. Owner resolution and the
// insert run as one transaction.
func (s *taskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.Name == "" {
		return domain.ErrBadRequest
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		owner, err := s.userStore.WithTx(tx).FindByUsername(ctx, input.Owner)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return domain.ErrUserNotExists
			}
			log.Error("failed to resolve task owner",
				slog.String("error", err.Error()),
				slog.String("owner", input.Owner))
			return err
		}

		task, err := domain.NewTask(input.Name, input.Description, input.DueDate, owner)
		if err != nil {
			return domain.ErrBadRequest
		}

		if err := s.taskStore.WithTx(tx).Save(ctx, task); err != nil {
			log.Error("failed to save new task",
				slog.String("error", err.Error()),
				slog.String("owner", input.Owner))
			return err
		}

		log.Info("task created",
			slog.Int64("task_id", task.ID),
			slog.String("owner", input.Owner))
		return nil
	})

	return normalizeError(err)
}

// GetTask implements TaskService.GetTask.
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) either.Either[error, TaskView] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return either.Left[error, TaskView](domain.ErrNoTaskExists)
		}
		log.Error("failed to find task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return either.Left[error, TaskView](domain.ErrUnexpected)
	}

	return either.Right[error](NewTaskView(*task))
}

// ListTasks implements TaskService.ListTasks. The filter combination selects
// the lookup in strict priority order: both filters, completion only,
// due date only, then unfiltered. A storage failure in any branch aborts the
// whole fetch.
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	filter ListTasksFilter,
	req store.PageRequest,
) either.Either[error, store.Page[TaskView]] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		page store.Page[domain.Task]
		err  error
	)
	switch {
	case filter.Completed != nil && filter.DueDateBefore != nil:
		page, err = s.taskStore.FindByCompletedAndDueDateBefore(
			ctx, *filter.Completed, *filter.DueDateBefore, req)
	case filter.Completed != nil:
		page, err = s.taskStore.FindByCompleted(ctx, *filter.Completed, req)
	case filter.DueDateBefore != nil:
		page, err = s.taskStore.FindByDueDateBefore(ctx, *filter.DueDateBefore, req)
	default:
		page, err = s.taskStore.FindAll(ctx, req)
	}
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.Int("page", req.Number),
			slog.Int("size", req.Size))
		return either.Left[error, store.Page[TaskView]](domain.ErrUnexpected)
	}

	return either.Right[error](store.MapPage(page, NewTaskView))
}

// UpdateTask implements TaskService.UpdateTask. Each field is applied only
// when present and non-empty; id and owner are immutable.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	input UpdateTaskInput,
	actingUsername string,
) error {
	return s.withOwnedTask(ctx, id, actingUsername, "update",
		func(ctx context.Context, txStore store.TaskStore, task *domain.Task) error {
			if input.Name != "" {
				task.Name = input.Name
			}
			if input.Description != "" {
				task.Description = input.Description
			}
			if input.DueDate != nil {
				task.DueDate = input.DueDate
			}
			return txStore.Save(ctx, task)
		})
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64, actingUsername string) error {
	return s.withOwnedTask(ctx, id, actingUsername, "delete",
		func(ctx context.Context, txStore store.TaskStore, task *domain.Task) error {
			return txStore.Delete(ctx, task)
		})
}

// CompleteTask implements TaskService.CompleteTask.
func (s *taskServiceImpl) CompleteTask(ctx context.Context, id int64, actingUsername string) error {
	return s.withOwnedTask(ctx, id, actingUsername, "complete",
		func(ctx context.Context, txStore store.TaskStore, task *domain.Task) error {
			task.Completed = true
			return txStore.Save(ctx, task)
		})
}

// withOwnedTask runs the shared authorization sequence inside one
// transaction: look the task up, check that the acting user owns it, then
// apply the mutation. Update, delete, and complete all go through here so the
// lookup, the ownership check, and the write are observed as a single unit.
func (s *taskServiceImpl) withOwnedTask(
	ctx context.Context,
	id int64,
	actingUsername string,
	operation string,
	mutate func(ctx context.Context, txStore store.TaskStore, task *domain.Task) error,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return domain.ErrNoTaskExists
			}
			log.Error("failed to find task",
				slog.String("error", err.Error()),
				slog.String("operation", operation),
				slog.Int64("task_id", id))
			return err
		}

		if !task.IsOwnedBy(actingUsername) {
			log.Debug("task mutation rejected: acting user is not the owner",
				slog.String("operation", operation),
				slog.Int64("task_id", id),
				slog.String("acting_username", actingUsername))
			return domain.ErrUnauthorizedUser
		}

		if err := mutate(ctx, txStore, task); err != nil {
			log.Error("failed to apply task mutation",
				slog.String("error", err.Error()),
				slog.String("operation", operation),
				slog.Int64("task_id", id))
			return err
		}

		return nil
	})

	return normalizeError(err)
}
