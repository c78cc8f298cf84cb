package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskward/taskward-api/internal/domain"
	"github.com/taskward/taskward-api/internal/platform/logger"
	"github.com/taskward/taskward-api/internal/store"
)

// taskColumns is the select list shared by every task query. The owner's
// username is joined in so ownership checks never need a second lookup.
const taskColumns = `
	t.id, t.name, COALESCE(t.description, ''), t.completed, t.due_date,
	t.id_user, u.user_name
`

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. The connection (or transaction) is managed by the caller.
func NewTaskStore(db store.DBTX, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx, logger: s.logger}
}

// scanTask reads one task row including the joined owner username.
func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	var task domain.Task
	var dueDate sql.NullTime

	err := scan(
		&task.ID,
		&task.Name,
		&task.Description,
		&task.Completed,
		&dueDate,
		&task.OwnerID,
		&task.Owner,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		d := dueDate.Time
		task.DueDate = &d
	}
	return &task, nil
}

// FindByID implements store.TaskStore.FindByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM task t
		JOIN app_user u ON u.id = t.id_user
		WHERE t.id = $1
	`, taskColumns)

	row := s.db.QueryRowContext(ctx, query, id)
	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	return task, nil
}

// Save implements store.TaskStore.Save. A task without an ID is inserted and
// the generated ID written back; otherwise the mutable columns of the
// existing row are updated. The owner reference is written on insert only.
func (s *TaskStore) Save(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during save",
			slog.String("error", err.Error()))
		return err
	}

	if task.ID == 0 {
		return s.insert(ctx, log, task)
	}
	return s.update(ctx, log, task)
}

func (s *TaskStore) insert(ctx context.Context, log *slog.Logger, task *domain.Task) error {
	query := `
		INSERT INTO task (name, description, completed, due_date, id_user)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Name,
		task.Description,
		task.Completed,
		task.DueDate,
		task.OwnerID,
	).Scan(&task.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("owner does not exist during task creation",
				slog.Int64("owner_id", task.OwnerID))
			return store.ErrUserNotFound
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("owner", task.Owner))
		return err
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("owner", task.Owner))
	return nil
}

func (s *TaskStore) update(ctx context.Context, log *slog.Logger, task *domain.Task) error {
	query := `
		UPDATE task
		SET name = $1, description = NULLIF($2, ''), completed = $3, due_date = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Name,
		task.Description,
		task.Completed,
		task.DueDate,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("task not found for update", slog.Int64("task_id", task.ID))
		return store.ErrTaskNotFound
	}

	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM task WHERE id = $1`, task.ID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("task not found for delete", slog.Int64("task_id", task.ID))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted", slog.Int64("task_id", task.ID))
	return nil
}

// FindByCompleted implements store.TaskStore.FindByCompleted.
func (s *TaskStore) FindByCompleted(
	ctx context.Context,
	completed bool,
	req store.PageRequest,
) (store.Page[domain.Task], error) {
	return s.findPage(ctx, "t.completed = $1", []any{completed}, req)
}

// FindByDueDateBefore implements store.TaskStore.FindByDueDateBefore.
// The cutoff is exclusive: only tasks due strictly before it match.
func (s *TaskStore) FindByDueDateBefore(
	ctx context.Context,
	cutoff time.Time,
	req store.PageRequest,
) (store.Page[domain.Task], error) {
	return s.findPage(ctx, "t.due_date < $1", []any{cutoff}, req)
}

// FindByCompletedAndDueDateBefore implements
// store.TaskStore.FindByCompletedAndDueDateBefore.
func (s *TaskStore) FindByCompletedAndDueDateBefore(
	ctx context.Context,
	completed bool,
	cutoff time.Time,
	req store.PageRequest,
) (store.Page[domain.Task], error) {
	return s.findPage(ctx, "t.completed = $1 AND t.due_date < $2", []any{completed, cutoff}, req)
}

// FindAll implements store.TaskStore.FindAll.
func (s *TaskStore) FindAll(
	ctx context.Context,
	req store.PageRequest,
) (store.Page[domain.Task], error) {
	return s.findPage(ctx, "TRUE", nil, req)
}

// findPage runs one paged listing: a content query ordered by id for stable
// pages, then a count query with the same condition for the total.
func (s *TaskStore) findPage(
	ctx context.Context,
	condition string,
	args []any,
	req store.PageRequest,
) (store.Page[domain.Task], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM task t
		JOIN app_user u ON u.id = t.id_user
		WHERE %s
		ORDER BY t.id
		LIMIT $%d OFFSET $%d
	`, taskColumns, condition, len(args)+1, len(args)+2)

	rows, err := s.db.QueryContext(ctx, query, append(args, req.Size, req.Offset())...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("condition", condition))
		return store.Page[domain.Task]{}, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return store.Page[domain.Task]{}, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return store.Page[domain.Task]{}, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM task t WHERE %s`, condition)

	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()),
			slog.String("condition", condition))
		return store.Page[domain.Task]{}, err
	}

	return store.NewPage(tasks, req, total), nil
}
