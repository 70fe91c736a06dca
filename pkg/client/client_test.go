package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/ports"
)

// fakeAPI is a minimal in-memory rendition of the server used to
// exercise the client without a database.
type fakeAPI struct {
	mu         sync.Mutex
	token      string
	owner      uuid.UUID
	tasks      []entities.Task
	updates    int
	failUpdate bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		token: "session-token",
		owner: uuid.New(),
	}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req ports.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "hunter22" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, ports.AuthResponse{
			Token: f.token,
			User:  entities.PublicUser{ID: f.owner, Email: req.Email},
		})
	})

	mux.HandleFunc("/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, ports.VerifyResponse{User: entities.PublicUser{ID: f.owner, Email: "me@example.com"}})
	})

	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, f.tasks)
		case http.MethodPost:
			var req ports.CreateTaskRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			title := strings.TrimSpace(req.Title)
			if title == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": "task title must not be empty"})
				return
			}
			task := entities.Task{
				ID:        uuid.New(),
				Title:     title,
				OwnerID:   f.owner,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			f.tasks = append([]entities.Task{task}, f.tasks...)
			writeJSON(w, http.StatusCreated, task)
		}
	})

	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}

		id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/tasks/"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		switch r.Method {
		case http.MethodPut:
			f.updates++
			if f.failUpdate {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
				return
			}
			var req ports.UpdateTaskRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			for i := range f.tasks {
				if f.tasks[i].ID != id {
					continue
				}
				if req.Title != nil {
					f.tasks[i].Title = strings.TrimSpace(*req.Title)
				}
				if req.Completed != nil {
					f.tasks[i].Completed = *req.Completed
				}
				f.tasks[i].UpdatedAt = time.Now()
				writeJSON(w, http.StatusOK, f.tasks[i])
				return
			}
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		case http.MethodDelete:
			for i := range f.tasks {
				if f.tasks[i].ID == id {
					f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
					break
				}
			}
			w.WriteHeader(http.StatusNoContent)
		}
	})

	return mux
}

func (f *fakeAPI) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+f.token
}

func (f *fakeAPI) seed(completed ...bool) []entities.Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	base := time.Now()
	f.tasks = nil
	for i, done := range completed {
		f.tasks = append([]entities.Task{{
			ID:        uuid.New(),
			Title:     "task",
			Completed: done,
			OwnerID:   f.owner,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			UpdatedAt: base.Add(time.Duration(i) * time.Second),
		}}, f.tasks...)
	}
	out := make([]entities.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func startFake(t interface{ Cleanup(func()) }) (*fakeAPI, *Client) {
	api := newFakeAPI()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	return api, c
}

func loginFake(ctx context.Context, c *Client) error {
	_, err := c.Login(ctx, "me@example.com", "hunter22")
	return err
}
