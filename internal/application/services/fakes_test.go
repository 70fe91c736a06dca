package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/taskdeck/core/internal/domain/entities"
)

// memUserRepo is an in-memory UserRepository for tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entities.User

	failCreate     error
	failGetByEmail error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]entities.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return entities.ErrEmailTaken
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return &u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGetByEmail != nil {
		return nil, r.failGetByEmail
	}
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

// memTaskRepo is an in-memory TaskRepository for tests. Ordering mirrors
// the Postgres implementation: newest created_at first.
type memTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]entities.Task

	failAll error
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[uuid.UUID]entities.Task)}
}

func (r *memTaskRepo) Create(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id, ownerID uuid.UUID) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	t, ok := r.tasks[id]
	if !ok || !t.OwnedBy(ownerID) {
		return nil, entities.ErrTaskNotFound
	}
	return &t, nil
}

func (r *memTaskRepo) Update(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	existing, ok := r.tasks[task.ID]
	if !ok || !existing.OwnedBy(task.OwnerID) {
		return entities.ErrTaskNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	if t, ok := r.tasks[id]; ok && t.OwnedBy(ownerID) {
		delete(r.tasks, id)
	}
	return nil
}

func (r *memTaskRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	var out []*entities.Task
	for id := range r.tasks {
		t := r.tasks[id]
		if t.OwnedBy(ownerID) {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var errStoreDown = errors.New("store unavailable")
