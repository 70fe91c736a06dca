package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingFields      = errors.New("email and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrEmptyTitle         = errors.New("task title must not be empty")
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// User represents a registered account. The password hash never leaves
// the server: it is excluded from JSON and reduced to a PublicUser in
// every API response.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// PublicUser is the client-visible projection of a User.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Public returns the projection of the user that is safe to send to clients.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// Task represents a single to-do item. OwnerID is set at creation and
// never changes; every store operation must filter by it.
type Task struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Completed bool      `json:"completed" db:"completed"`
	OwnerID   uuid.UUID `json:"ownerId" db:"owner_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NormalizeTitle trims surrounding whitespace from a task title.
// Clients are expected to pre-trim, but the server never trusts that.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// OwnedBy reports whether the task belongs to the given account.
func (t *Task) OwnedBy(ownerID uuid.UUID) bool {
	return t.OwnerID == ownerID
}
