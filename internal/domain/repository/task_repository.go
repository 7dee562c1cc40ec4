package repository

import (
	"context"

	"github.com/taskstack/taskstack/internal/domain/entity"
)

// TaskRepository defines persistence operations for tasks. Update and Delete
// filter by both task ID and owner ID in a single statement, so a task owned
// by someone else is indistinguishable from a missing one.
type TaskRepository interface {
	Create(ctx context.Context, ownerID int64, title string) (int64, error)
	Get(ctx context.Context, taskID, ownerID int64) (*entity.Task, error)
	ListForOwner(ctx context.Context, ownerID int64) ([]entity.Task, error)
	// ListAll is privileged; only the admin-gated route may reach it.
	ListAll(ctx context.Context) ([]entity.Task, error)
	Update(ctx context.Context, taskID, ownerID int64, title string) error
	Delete(ctx context.Context, taskID, ownerID int64) error
}
