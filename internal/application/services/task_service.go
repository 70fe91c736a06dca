package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/infrastructure/logger"
	"github.com/taskdeck/core/internal/ports"
)

// TaskService handles task operations. Every operation takes the owner
// id resolved by the auth guard; it is never accepted from client input.
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// List returns all tasks owned by ownerID, newest-created first. An
// empty result is not an error.
func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	if tasks == nil {
		tasks = []*entities.Task{}
	}

	return tasks, nil
}

// Create stores a new task for ownerID. The title is trimmed server-side
// and rejected when empty after trimming.
func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, req ports.CreateTaskRequest) (*entities.Task, error) {
	title := entities.NormalizeTitle(req.Title)
	if title == "" {
		return nil, entities.ErrEmptyTitle
	}

	task := &entities.Task{
		ID:        uuid.New(),
		Title:     title,
		Completed: false,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "owner_id", ownerID)

	return task, nil
}

// Update applies the fields present in req to the owned task and returns
// the updated record. A task under a different owner is reported as not
// found, identical to one that does not exist.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if req.Title != nil {
		title := entities.NormalizeTitle(*req.Title)
		if title == "" {
			return nil, entities.ErrEmptyTitle
		}
		task.Title = title
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Infow("Task updated", "task_id", task.ID, "owner_id", ownerID)

	return task, nil
}

// Delete removes the owned task. Deleting a task that is absent or owned
// by someone else is a silent no-op: the end state, task not present for
// this owner, is the same either way.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, taskID, ownerID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Infow("Task deleted", "task_id", taskID, "owner_id", ownerID)

	return nil
}
