package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskward/taskward-api/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()
	owner := &domain.User{ID: 7, Username: "alice"}

	t.Run("creates an incomplete task bound to its owner", func(t *testing.T) {
		t.Parallel()
		due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		task, err := domain.NewTask("write report", "quarterly numbers", &due, owner)
		require.NoError(t, err)

		assert.Zero(t, task.ID, "id is assigned by storage")
		assert.Equal(t, "write report", task.Name)
		assert.False(t, task.Completed)
		assert.Equal(t, int64(7), task.OwnerID)
		assert.Equal(t, "alice", task.Owner)
	})

	t.Run("allows an empty description and no due date", func(t *testing.T) {
		t.Parallel()
		task, err := domain.NewTask("write report", "", nil, owner)
		require.NoError(t, err)
		assert.Empty(t, task.Description)
		assert.Nil(t, task.DueDate)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewTask("", "desc", nil, owner)
		assert.ErrorIs(t, err, domain.ErrEmptyTaskName)
	})

	t.Run("rejects a nil owner", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewTask("write report", "", nil, nil)
		assert.ErrorIs(t, err, domain.ErrNoTaskOwner)
	})
}

func TestIsOwnedBy(t *testing.T) {
	t.Parallel()
	task := domain.Task{Name: "write report", Owner: "alice"}

	assert.True(t, task.IsOwnedBy("alice"))
	assert.False(t, task.IsOwnedBy("mallory"))
	assert.False(t, task.IsOwnedBy(""))
}
