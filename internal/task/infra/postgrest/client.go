// Package postgrest is the task repository backed by the managed backend's data API.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/todo-web/internal/backend"
	domaintask "github.com/KasumiMercury/todo-web/internal/task/domain/task"
	domainuser "github.com/KasumiMercury/todo-web/internal/task/domain/user"
)

const (
	todosPath = "rest/v1/todos"

	preferHeader         = "Prefer"
	returnRepresentation = "return=representation"
)

// Doer is the subset of backend.Client used here.
type Doer interface {
	Do(ctx context.Context, req *backend.Request, out any) error
}

type taskRepository struct {
	backend Doer
	logger  *slog.Logger
}

func NewTaskRepository(backendClient Doer) domaintask.TaskRepository {
	return &taskRepository{
		backend: backendClient,
		logger:  slog.Default().WithGroup("task").WithGroup("postgrest"),
	}
}

// rowID accepts both bigint and uuid primary keys.
type rowID string

func (id *rowID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrRowIDInvalid, err)
		}

		*id = rowID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("%w: %v", ErrRowIDInvalid, err)
	}

	*id = rowID(n.String())

	return nil
}

type todoRow struct {
	ID          rowID     `json:"id"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"is_completed"`
	UserID      string    `json:"user_id"`
	InsertedAt  time.Time `json:"inserted_at"`
}

type insertBody struct {
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
	UserID      string `json:"user_id"`
}

type completionBody struct {
	IsCompleted bool `json:"is_completed"`
}

type titleBody struct {
	Title string `json:"title"`
}

func (r *taskRepository) ListTasks(ctx context.Context, principal domainuser.Principal) ([]*domaintask.Task, error) {
	if principal.IsZero() {
		return nil, ErrPrincipalRequired
	}

	var rows []todoRow

	err := r.backend.Do(ctx, &backend.Request{
		Method: http.MethodGet,
		Path:   todosPath,
		Query: url.Values{
			"select":  {"*"},
			"user_id": {eq(principal.UserID().String())},
			"order":   {"id.asc"},
		},
		Token: principal.Token(),
	}, &rows)
	if err != nil {
		return nil, err
	}

	return toDomain(rows)
}

func (r *taskRepository) CreateTask(ctx context.Context, principal domainuser.Principal, title domaintask.Title) (*domaintask.Task, error) {
	if principal.IsZero() {
		return nil, ErrPrincipalRequired
	}

	var rows []todoRow

	err := r.backend.Do(ctx, &backend.Request{
		Method: http.MethodPost,
		Path:   todosPath,
		Header: http.Header{preferHeader: {returnRepresentation}},
		Body: insertBody{
			Title:       title.String(),
			IsCompleted: false,
			UserID:      principal.UserID().String(),
		},
		Token: principal.Token(),
	}, &rows)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrEmptyInsert
	}

	tasks, err := toDomain(rows[:1])
	if err != nil {
		return nil, err
	}

	return tasks[0], nil
}

func (r *taskRepository) UpdateTaskCompletion(ctx context.Context, principal domainuser.Principal, id domaintask.ID, isCompleted bool) error {
	return r.modify(ctx, principal, id, http.MethodPatch, completionBody{IsCompleted: isCompleted})
}

func (r *taskRepository) UpdateTaskTitle(ctx context.Context, principal domainuser.Principal, id domaintask.ID, title domaintask.Title) error {
	return r.modify(ctx, principal, id, http.MethodPatch, titleBody{Title: title.String()})
}

func (r *taskRepository) DeleteTask(ctx context.Context, principal domainuser.Principal, id domaintask.ID) error {
	return r.modify(ctx, principal, id, http.MethodDelete, nil)
}

// modify targets a single row owned by the principal. The representation is
// requested so a filter that matched nothing can be told apart from success.
func (r *taskRepository) modify(ctx context.Context, principal domainuser.Principal, id domaintask.ID, method string, body any) error {
	if principal.IsZero() {
		return ErrPrincipalRequired
	}

	var rows []todoRow

	err := r.backend.Do(ctx, &backend.Request{
		Method: method,
		Path:   todosPath,
		Query: url.Values{
			"id":      {eq(id.String())},
			"user_id": {eq(principal.UserID().String())},
		},
		Header: http.Header{preferHeader: {returnRepresentation}},
		Body:   body,
		Token:  principal.Token(),
	}, &rows)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		r.logger.DebugContext(ctx, "filter matched no rows",
			slog.String("method", method),
			slog.String("todo_id", id.String()),
		)

		return domaintask.ErrTaskNotFound
	}

	return nil
}

func eq(value string) string {
	return "eq." + value
}

func toDomain(rows []todoRow) ([]*domaintask.Task, error) {
	tasks := make([]*domaintask.Task, 0, len(rows))

	for _, row := range rows {
		taskID, err := domaintask.NewIDFromString(string(row.ID))
		if err != nil {
			return nil, err
		}

		userID, err := domainuser.NewIDFromString(row.UserID)
		if err != nil {
			return nil, err
		}

		task, err := domaintask.NewTask(taskID, userID, row.Title, row.IsCompleted, row.InsertedAt)
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}
