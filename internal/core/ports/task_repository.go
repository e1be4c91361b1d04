package ports

import (
	"context"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// TaskFilter narrows FindAllForOwner. Zero values mean no filter.
type TaskFilter struct {
	Status domain.TaskStatus
}

// TaskRepository persists tasks. Every lookup filters by task id and owner in
// the same query, so a task owned by someone else is indistinguishable from a
// missing one (domain.ErrTaskNotFound).
type TaskRepository interface {
	Create(ctx context.Context, ownerID string, task *domain.Task) (*domain.Task, error)
	FindAllForOwner(ctx context.Context, ownerID string, filter TaskFilter) ([]*domain.Task, error)
	FindOneForOwner(ctx context.Context, taskID, ownerID string) (*domain.Task, error)
	UpdateForOwner(ctx context.Context, taskID, ownerID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteForOwner(ctx context.Context, taskID, ownerID string) error
	DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error)
}
