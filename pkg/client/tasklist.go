package client

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/ports"
)

// Filter selects which tasks Visible returns. It is purely local state
// and never affects server calls.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// RowState is the edit state of a single task row.
type RowState int

const (
	RowViewing RowState = iota
	RowEditing
)

// Row is one task with its local view state. Draft holds the edit
// buffer while the row is in RowEditing.
type Row struct {
	Task  entities.Task
	State RowState
	Draft string
}

// TaskList is the local view-model over an account's tasks: it mirrors
// the server's records and replaces them with the server's authoritative
// response after each mutation.
type TaskList struct {
	client        *Client
	filter        Filter
	rows          []Row
	confirmDelete func(entities.Task) bool
}

// TaskListOption configures a TaskList.
type TaskListOption func(*TaskList)

// WithDeleteConfirmation installs the hook consulted before any delete.
// Deletion proceeds only when the hook returns true.
func WithDeleteConfirmation(fn func(entities.Task) bool) TaskListOption {
	return func(l *TaskList) { l.confirmDelete = fn }
}

// NewTaskList creates an empty task list bound to a client session.
func NewTaskList(c *Client, opts ...TaskListOption) *TaskList {
	l := &TaskList{
		client: c,
		filter: FilterAll,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Refresh replaces local state with the server's task list, newest
// first. A rejected token has already logged the client out by the time
// the error is returned.
func (l *TaskList) Refresh(ctx context.Context) error {
	tasks, err := l.client.ListTasks(ctx)
	if err != nil {
		return err
	}

	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		rows[i] = Row{Task: t}
	}
	l.rows = rows
	return nil
}

// Add creates a task and prepends the stored record to the list.
func (l *TaskList) Add(ctx context.Context, title string) error {
	task, err := l.client.CreateTask(ctx, title)
	if err != nil {
		return err
	}

	l.rows = append([]Row{{Task: *task}}, l.rows...)
	return nil
}

// Toggle flips a task's completion flag on the server and replaces the
// local record with the returned one.
func (l *TaskList) Toggle(ctx context.Context, id uuid.UUID) error {
	row := l.row(id)
	if row == nil {
		return ErrNotFound
	}

	completed := !row.Task.Completed
	task, err := l.client.UpdateTask(ctx, id, ports.UpdateTaskRequest{Completed: &completed})
	if err != nil {
		return err
	}

	row.Task = *task
	return nil
}

// BeginEdit puts a row into editing state with the current title as the
// edit buffer.
func (l *TaskList) BeginEdit(id uuid.UUID) {
	if row := l.row(id); row != nil && row.State == RowViewing {
		row.State = RowEditing
		row.Draft = row.Task.Title
	}
}

// SetDraft replaces a row's edit buffer.
func (l *TaskList) SetDraft(id uuid.UUID, draft string) {
	if row := l.row(id); row != nil && row.State == RowEditing {
		row.Draft = draft
	}
}

// CancelEdit leaves editing without a server call and discards the buffer.
func (l *TaskList) CancelEdit(id uuid.UUID) {
	if row := l.row(id); row != nil && row.State == RowEditing {
		row.State = RowViewing
		row.Draft = row.Task.Title
	}
}

// ConfirmEdit commits the edit buffer. An unchanged or empty-after-trim
// buffer exits editing without a server call. On a failed update the
// buffer reverts to the last known title and the row stays in editing.
func (l *TaskList) ConfirmEdit(ctx context.Context, id uuid.UUID) error {
	row := l.row(id)
	if row == nil || row.State != RowEditing {
		return nil
	}

	title := strings.TrimSpace(row.Draft)
	if title == "" || title == row.Task.Title {
		row.State = RowViewing
		row.Draft = row.Task.Title
		return nil
	}

	task, err := l.client.UpdateTask(ctx, id, ports.UpdateTaskRequest{Title: &title})
	if err != nil {
		row.Draft = row.Task.Title
		return err
	}

	row.Task = *task
	row.State = RowViewing
	row.Draft = task.Title
	return nil
}

// Delete removes a task after the confirmation hook approves. Without a
// hook deletion proceeds unconditionally.
func (l *TaskList) Delete(ctx context.Context, id uuid.UUID) error {
	row := l.row(id)
	if row == nil {
		return nil
	}

	if l.confirmDelete != nil && !l.confirmDelete(row.Task) {
		return nil
	}

	if err := l.client.DeleteTask(ctx, id); err != nil {
		return err
	}

	for i := range l.rows {
		if l.rows[i].Task.ID == id {
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			break
		}
	}
	return nil
}

// SetFilter changes which tasks Visible returns.
func (l *TaskList) SetFilter(f Filter) {
	l.filter = f
}

// Filter returns the current filter.
func (l *TaskList) Filter() Filter {
	return l.filter
}

// Visible returns the tasks matching the current filter, preserving
// list order.
func (l *TaskList) Visible() []entities.Task {
	out := make([]entities.Task, 0, len(l.rows))
	for _, row := range l.rows {
		switch l.filter {
		case FilterActive:
			if row.Task.Completed {
				continue
			}
		case FilterCompleted:
			if !row.Task.Completed {
				continue
			}
		}
		out = append(out, row.Task)
	}
	return out
}

// Counts returns the number of active and completed tasks, independent
// of the current filter.
func (l *TaskList) Counts() (active, completed int) {
	for _, row := range l.rows {
		if row.Task.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}

// Rows exposes the rows with their edit state, newest task first.
func (l *TaskList) Rows() []Row {
	return l.rows
}

func (l *TaskList) row(id uuid.UUID) *Row {
	for i := range l.rows {
		if l.rows[i].Task.ID == id {
			return &l.rows[i]
		}
	}
	return nil
}
