package ports

import (
	"context"
	"time"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// CreateTaskInput is a validated, normalized task creation payload.
type CreateTaskInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Priority    int
	Status      domain.TaskStatus
	Tags        []string
}

// TaskService defines the ownership-scoped task use cases.
type TaskService interface {
	Create(ctx context.Context, ownerID string, in CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, ownerID string, filter TaskFilter) ([]*domain.Task, error)
	Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	TimeSummary(ctx context.Context, ownerID, taskID string) (domain.TimeSummary, error)
}
