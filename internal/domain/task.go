package domain

import (
	"errors"
	"time"
)

// Task validation errors.
var (
	ErrEmptyTaskName = errors.New("task name cannot be empty")
	ErrNoTaskOwner   = errors.New("task must have an owner")
)

// Task is a single unit of work owned by exactly one user. The owner is
// established at creation and never transferred; only the owner may update,
// delete, or complete the task. The ID is assigned by storage on first save.
type Task struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	OwnerID     int64      `json:"-"`
	Owner       string     `json:"-"`
}

// NewTask creates a Task owned by the given user. Completed always starts
// false. Returns an error if the name is empty or the owner is nil.
func NewTask(name, description string, dueDate *time.Time, owner *User) (*Task, error) {
	if owner == nil {
		return nil, ErrNoTaskOwner
	}

	task := &Task{
		Name:        name,
		Description: description,
		DueDate:     dueDate,
		OwnerID:     owner.ID,
		Owner:       owner.Username,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the Task's required fields.
func (t *Task) Validate() error {
	if t.Name == "" {
		return ErrEmptyTaskName
	}
	if t.Owner == "" {
		return ErrNoTaskOwner
	}
	return nil
}

// IsOwnedBy reports whether the task belongs to the given username.
func (t *Task) IsOwnedBy(username string) bool {
	return t.Owner == username
}
