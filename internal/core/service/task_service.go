package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
)

// TaskService implements the task use cases. Every call is scoped to the
// owner id taken from the caller's identity.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger, now: time.Now}
}

// Create persists a new task owned by ownerID.
func (s *TaskService) Create(ctx context.Context, ownerID string, in ports.CreateTaskInput) (*domain.Task, error) {
	status := in.Status
	if status == "" {
		status = domain.TaskPending
	}

	now := s.now().UTC()
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Priority:    in.Priority,
		Status:      status,
		Tags:        in.Tags,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, ownerID, task)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to create task")
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info().Str("task_id", created.ID).Str("user_id", ownerID).Msg("task created")
	return created, nil
}

// List returns the owner's tasks matching filter.
func (s *TaskService) List(ctx context.Context, ownerID string, filter ports.TaskFilter) ([]*domain.Task, error) {
	tasks, err := s.repo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a single task, or domain.ErrTaskNotFound when it does not exist
// or belongs to someone else.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindOneForOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, wrapTaskErr("get task", err)
	}
	return task, nil
}

// Update applies patch to the owner's task. An empty patch returns the task
// unchanged.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.IsEmpty() {
		return s.Get(ctx, ownerID, taskID)
	}

	task, err := s.repo.UpdateForOwner(ctx, taskID, ownerID, patch)
	if err != nil {
		return nil, wrapTaskErr("update task", err)
	}

	s.logger.Info().Str("task_id", taskID).Str("user_id", ownerID).Msg("task updated")
	return task, nil
}

// Delete removes the owner's task. Repeated deletes keep returning
// domain.ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if err := s.repo.DeleteForOwner(ctx, taskID, ownerID); err != nil {
		return wrapTaskErr("delete task", err)
	}

	s.logger.Info().Str("task_id", taskID).Str("user_id", ownerID).Msg("task deleted")
	return nil
}

// TimeSummary reports elapsed and remaining hours for the owner's task.
func (s *TaskService) TimeSummary(ctx context.Context, ownerID, taskID string) (domain.TimeSummary, error) {
	task, err := s.Get(ctx, ownerID, taskID)
	if err != nil {
		return domain.TimeSummary{}, err
	}
	return task.TimeSummary(s.now().UTC()), nil
}

func wrapTaskErr(op string, err error) error {
	if errors.Is(err, domain.ErrTaskNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
