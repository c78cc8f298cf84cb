package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/taskward/taskward-api/internal/domain"
	"github.com/taskward/taskward-api/internal/store"
)

// noopDriver backs a *sql.DB whose transactions begin, commit, and roll back
// without a real database. The fake stores below ignore the transaction, so
// services can run their RunInTransaction paths in unit tests.
type noopDriver struct{}

func (noopDriver) Open(name string) (driver.Conn, error) { return &noopConn{}, nil }

type noopConn struct{}

func (*noopConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}
func (*noopConn) Close() error              { return nil }
func (*noopConn) Begin() (driver.Tx, error) { return noopTx{}, nil }

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

var registerNoopDriver sync.Once

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	registerNoopDriver.Do(func() {
		sql.Register("noop", noopDriver{})
	})
	db, err := sql.Open("noop", "")
	if err != nil {
		t.Fatalf("failed to open noop db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeUserStore implements store.UserStore in memory with optional function
// overrides for failure injection.
type fakeUserStore struct {
	FindByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	SaveFn           func(ctx context.Context, user *domain.User) error

	Users  map[string]*domain.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{Users: make(map[string]*domain.User)}
}

var _ store.UserStore = (*fakeUserStore)(nil)

func (f *fakeUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.FindByUsernameFn != nil {
		return f.FindByUsernameFn(ctx, username)
	}
	user, ok := f.Users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) Save(ctx context.Context, user *domain.User) error {
	if f.SaveFn != nil {
		return f.SaveFn(ctx, user)
	}
	if user.ID == 0 {
		if _, exists := f.Users[user.Username]; exists {
			return store.ErrUsernameExists
		}
		f.nextID++
		user.ID = f.nextID
	}
	copied := *user
	f.Users[user.Username] = &copied
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id int64) error {
	for username, user := range f.Users {
		if user.ID == id {
			delete(f.Users, username)
			return nil
		}
	}
	return store.ErrUserNotFound
}

func (f *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return f }

// fakeTaskStore implements store.TaskStore in memory. It records which of
// the four listing lookups was invoked so dispatch tests can assert the
// selected branch.
type fakeTaskStore struct {
	FindByIDFn func(ctx context.Context, id int64) (*domain.Task, error)
	SaveFn     func(ctx context.Context, task *domain.Task) error
	DeleteFn   func(ctx context.Context, task *domain.Task) error

	// ListErr, when set, fails every listing lookup.
	ListErr error

	// LastLookup names the most recently invoked listing operation.
	LastLookup string

	Tasks  map[int64]*domain.Task
	nextID int64
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{Tasks: make(map[int64]*domain.Task)}
}

var _ store.TaskStore = (*fakeTaskStore)(nil)

func (f *fakeTaskStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	task, ok := f.Tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskStore) Save(ctx context.Context, task *domain.Task) error {
	if f.SaveFn != nil {
		return f.SaveFn(ctx, task)
	}
	if task.ID == 0 {
		f.nextID++
		task.ID = f.nextID
	}
	copied := *task
	f.Tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, task *domain.Task) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, task)
	}
	if _, ok := f.Tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	delete(f.Tasks, task.ID)
	return nil
}

func (f *fakeTaskStore) page(matching []domain.Task, req store.PageRequest) store.Page[domain.Task] {
	total := int64(len(matching))
	start := req.Offset()
	if start > len(matching) {
		start = len(matching)
	}
	end := start + req.Size
	if end > len(matching) {
		end = len(matching)
	}
	return store.NewPage(matching[start:end], req, total)
}

func (f *fakeTaskStore) collect(match func(domain.Task) bool) []domain.Task {
	var out []domain.Task
	for id := int64(1); id <= f.nextID; id++ {
		if task, ok := f.Tasks[id]; ok && match(*task) {
			out = append(out, *task)
		}
	}
	return out
}

func (f *fakeTaskStore) FindByCompleted(
	ctx context.Context,
	completed bool,
	req store.PageRequest,
) (store.Page[domain.Task], error) {
	f.LastLookup = "by_completed"
	if f.ListErr != nil {
		return store.Page[domain.Task]{}, f.ListErr
	}
	return f.page(f.collect(func(t domain.Task) bool { return t.Completed == completed }), req), nil
}

func (f *fakeTaskStore) FindByDueDateBefore(
	ctx context.Context,
	cutoff time.Time,
	req store.PageRequest,
) (store.Page[domain.Task], error) {
	f.LastLookup = "by_due_date"
	if f.ListErr != nil {
		return store.Page[domain.Task]{}, f.ListErr
	}
	return f.page(f.collect(func(t domain.Task) bool {
		return t.DueDate != nil && t.DueDate.Before(cutoff)
	}), req), nil
}

func (f *fakeTaskStore) FindByCompletedAndDueDateBefore(
	ctx context.Context,
	completed bool,
	cutoff time.Time,
	req store.PageRequest,
) (store.Page[domain.Task], error) {
	f.LastLookup = "by_completed_and_due_date"
	if f.ListErr != nil {
		return store.Page[domain.Task]{}, f.ListErr
	}
	return f.page(f.collect(func(t domain.Task) bool {
		return t.Completed == completed && t.DueDate != nil && t.DueDate.Before(cutoff)
	}), req), nil
}

func (f *fakeTaskStore) FindAll(
	ctx context.Context,
	req store.PageRequest,
) (store.Page[domain.Task], error) {
	f.LastLookup = "all"
	if f.ListErr != nil {
		return store.Page[domain.Task]{}, f.ListErr
	}
	return f.page(f.collect(func(domain.Task) bool { return true }), req), nil
}

func (f *fakeTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return f }
