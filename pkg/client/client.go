// Package client is a Go client for the TaskDeck API. A Client carries
// its session token as explicit per-instance state; there is no global
// request-default configuration to mutate.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/ports"
)

var (
	// ErrUnauthorized is returned when the server rejects the session
	// token. The client clears its session before returning it.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when the addressed task does not exist
	// under the authenticated account.
	ErrNotFound = errors.New("not found")
)

// APIError carries a non-2xx response that is not covered by a sentinel.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogoutHandler registers a callback fired when the session is
// cleared after the server rejects the token.
func WithLogoutHandler(fn func()) Option {
	return func(c *Client) { c.onLogout = fn }
}

// Client talks to a TaskDeck server at a configurable base URL.
type Client struct {
	baseURL  string
	http     *http.Client
	onLogout func()

	mu    sync.RWMutex
	token string
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken restores a previously stored session token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Logout clears the session and fires the logout handler.
func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if c.onLogout != nil {
		c.onLogout()
	}
}

// Register creates an account and starts a session with the returned token.
func (c *Client) Register(ctx context.Context, email, password string) (*ports.AuthResponse, error) {
	var resp ports.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", ports.RegisterRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Login authenticates and starts a session with the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthResponse, error) {
	var resp ports.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", ports.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Verify confirms the stored token is still accepted by the server.
func (c *Client) Verify(ctx context.Context) (*ports.VerifyResponse, error) {
	var resp ports.VerifyResponse
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTasks fetches the account's tasks, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]entities.Task, error) {
	var tasks []entities.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task with the given title.
func (c *Client) CreateTask(ctx context.Context, title string) (*entities.Task, error) {
	var task entities.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", ports.CreateTaskRequest{Title: title}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update and returns the server's record.
func (c *Client) UpdateTask(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	var task entities.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id.String(), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task. Deleting an absent task succeeds.
func (c *Client) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id.String(), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	token := c.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		// A rejected session token logs the client out. A failed login
		// attempt carries no token and leaves state untouched.
		if token != "" {
			c.Logout()
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}
}
