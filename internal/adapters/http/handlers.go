package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskdeck/core/internal/application/services"
	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/infrastructure/logger"
	"github.com/taskdeck/core/internal/ports"
)

// ContextUserKey is the echo context key under which the auth guard
// stores the verified account id.
const ContextUserKey = "user_id"

// MessageResponse is a simple message envelope for error bodies.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles account registration
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body ports.RegisterRequest true "Credentials"
// @Success 201 {object} ports.AuthResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return h.mapAuthError(c, err, "Registration failed")
	}

	return c.JSON(http.StatusCreated, response)
}

// Login handles user login
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body ports.LoginRequest true "Credentials"
// @Success 200 {object} ports.AuthResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return h.mapAuthError(c, err, "Login failed")
	}

	return c.JSON(http.StatusOK, response)
}

// Verify confirms the presented token still maps to an account
// @Summary Verify the current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ports.VerifyResponse
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	userID := UserIDFromContext(c)

	response, err := h.authService.VerifySession(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	return c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) mapAuthError(c echo.Context, err error, logMsg string) error {
	switch {
	case errors.Is(err, entities.ErrMissingFields),
		errors.Is(err, entities.ErrPasswordTooShort):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, entities.ErrInvalidCredentials.Error())
	default:
		h.logger.Errorw(logMsg, "error", err, "path", c.Request().URL.Path)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// List returns all tasks owned by the authenticated account
// @Summary List tasks, newest first
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} entities.Task
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID := UserIDFromContext(c)

	tasks, err := h.taskService.List(c.Request().Context(), userID)
	if err != nil {
		h.logger.Errorw("List tasks failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}

// Create stores a new task for the authenticated account
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ports.CreateTaskRequest true "Task"
// @Success 201 {object} entities.Task
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID := UserIDFromContext(c)

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return h.mapTaskError(c, err, "Create task failed")
	}

	return c.JSON(http.StatusCreated, task)
}

// Update applies a partial update to an owned task
// @Summary Update a task's title and/or completion flag
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param body body ports.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} entities.Task
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID := UserIDFromContext(c)

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable id cannot name an owned task.
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.Update(c.Request().Context(), userID, taskID, req)
	if err != nil {
		return h.mapTaskError(c, err, "Update task failed")
	}

	return c.JSON(http.StatusOK, task)
}

// Delete removes an owned task; absent tasks succeed as a no-op
// @Summary Delete a task
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 204
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID := UserIDFromContext(c)

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Treated as a delete of a task that does not exist.
		return c.NoContent(http.StatusNoContent)
	}

	if err := h.taskService.Delete(c.Request().Context(), userID, taskID); err != nil {
		h.logger.Errorw("Delete task failed", "error", err, "user_id", userID, "task_id", taskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete task")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TaskHandler) mapTaskError(c echo.Context, err error, logMsg string) error {
	switch {
	case errors.Is(err, entities.ErrEmptyTitle):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrTaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	default:
		h.logger.Errorw(logMsg, "error", err, "user_id", UserIDFromContext(c), "path", c.Request().URL.Path)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

// UserIDFromContext extracts the verified account id the auth guard
// stored on the request. uuid.Nil means the guard never ran.
func UserIDFromContext(c echo.Context) uuid.UUID {
	userID, ok := c.Get(ContextUserKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
