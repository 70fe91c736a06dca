package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/core/internal/domain/entities"
)

// UserRepository defines the interface for account data operations.
// Lookups that find nothing return entities.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// TaskRepository defines the interface for task data operations.
// Every method that addresses a single task takes both the task id and
// the owner id; a task under a different owner is indistinguishable
// from one that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	// Delete removes the task if it exists under ownerID and is a no-op
	// otherwise.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	// ListByOwner returns the owner's tasks, newest-created first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Task, error)
}
