package ports

import (
	"github.com/taskdeck/core/internal/domain/entities"
)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string              `json:"token"`
	User  entities.PublicUser `json:"user"`
}

// VerifyResponse is returned by the session verification endpoint.
type VerifyResponse struct {
	User entities.PublicUser `json:"user"`
}

// CreateTaskRequest is the payload for task creation.
type CreateTaskRequest struct {
	Title string `json:"title" validate:"required"`
}

// UpdateTaskRequest carries a partial task update. Nil fields are left
// unchanged on the stored record.
type UpdateTaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}
