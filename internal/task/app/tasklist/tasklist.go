package tasklist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	domaintask "github.com/KasumiMercury/todo-web/internal/task/domain/task"
	domainuser "github.com/KasumiMercury/todo-web/internal/task/domain/user"
)

type Todo struct {
	ID          string
	Title       string
	IsCompleted bool
}

// State is a point-in-time copy of a View.
type State struct {
	Todos      []Todo
	NewTodo    string
	Loading    bool
	EditTodoID string
	EditTitle  string
}

func (s State) IsEditing(id string) bool {
	return s.EditTodoID != "" && s.EditTodoID == id
}

// View holds the task list page state for one session.
// The lock is never held across a repository call.
type View struct {
	mu       sync.Mutex
	taskRepo domaintask.TaskRepository
	logger   *slog.Logger

	todos      []Todo
	newTodo    string
	loading    bool
	editTodoID string
	editTitle  string

	issued  uint64
	applied uint64
}

func NewView(taskRepo domaintask.TaskRepository) *View {
	return &View{
		taskRepo: taskRepo,
		logger:   slog.Default().WithGroup("task").WithGroup("tasklist"),
	}
}

func (v *View) SetNewTodo(title string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.newTodo = title
}

func (v *View) SetEditTitle(title string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.editTitle = title
}

func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	todos := make([]Todo, len(v.todos))
	copy(todos, v.todos)

	return State{
		Todos:      todos,
		NewTodo:    v.newTodo,
		Loading:    v.loading,
		EditTodoID: v.editTodoID,
		EditTitle:  v.editTitle,
	}
}

// FetchTodos replaces the list with the principal's tasks. A response is
// dropped when a fetch issued after it has already been applied.
func (v *View) FetchTodos(ctx context.Context, principal domainuser.Principal) error {
	if principal.IsZero() {
		return ErrNoSession
	}

	v.mu.Lock()
	v.issued++
	ticket := v.issued
	v.mu.Unlock()

	tasks, err := v.taskRepo.ListTasks(ctx, principal)
	if err != nil {
		v.logger.ErrorContext(ctx, "error fetching todos",
			slog.String("user_id", principal.UserID().String()),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	todos := make([]Todo, 0, len(tasks))
	for _, t := range tasks {
		todos = append(todos, Todo{
			ID:          t.ID().String(),
			Title:       t.Title(),
			IsCompleted: t.IsCompleted(),
		})
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if ticket <= v.applied {
		v.logger.DebugContext(ctx, "dropping stale fetch response",
			slog.Uint64("ticket", ticket),
			slog.Uint64("applied", v.applied),
		)

		return nil
	}

	v.todos = todos
	v.applied = ticket

	return nil
}

// AddTodo inserts the pending new todo. Blank input is ignored without a
// remote call. The pending input and loading flag are cleared whether or not
// the insert succeeds.
func (v *View) AddTodo(ctx context.Context, principal domainuser.Principal) error {
	v.mu.Lock()

	if domaintask.IsBlank(v.newTodo) {
		v.mu.Unlock()

		return nil
	}

	if v.loading {
		v.mu.Unlock()

		return ErrBusy
	}

	if principal.IsZero() {
		v.mu.Unlock()

		return ErrNoSession
	}

	title, err := domaintask.NewTitle(v.newTodo)
	if err != nil {
		v.mu.Unlock()

		return err
	}

	v.loading = true
	v.mu.Unlock()

	_, createErr := v.taskRepo.CreateTask(ctx, principal, title)

	v.mu.Lock()
	v.newTodo = ""
	v.loading = false
	v.mu.Unlock()

	if createErr != nil {
		v.logger.ErrorContext(ctx, "error adding todo", slog.String("error", createErr.Error()))

		return fmt.Errorf("%w: %w", ErrMutationFailed, createErr)
	}

	v.refetch(ctx, principal)

	return nil
}

func (v *View) ToggleTodoCompletion(ctx context.Context, principal domainuser.Principal, id string, current bool) error {
	if principal.IsZero() {
		return ErrNoSession
	}

	taskID, err := domaintask.NewIDFromString(id)
	if err != nil {
		v.logger.WarnContext(ctx, "invalid todo id", slog.String("error", err.Error()))

		return fmt.Errorf("%w: %w", ErrMutationFailed, err)
	}

	if err := v.taskRepo.UpdateTaskCompletion(ctx, principal, taskID, !current); err != nil {
		v.logger.ErrorContext(ctx, "error updating todo",
			slog.String("todo_id", taskID.String()),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("%w: %w", ErrMutationFailed, err)
	}

	v.refetch(ctx, principal)

	return nil
}

func (v *View) DeleteTodo(ctx context.Context, principal domainuser.Principal, id string) error {
	if principal.IsZero() {
		return ErrNoSession
	}

	taskID, err := domaintask.NewIDFromString(id)
	if err != nil {
		v.logger.WarnContext(ctx, "invalid todo id", slog.String("error", err.Error()))

		return fmt.Errorf("%w: %w", ErrMutationFailed, err)
	}

	if err := v.taskRepo.DeleteTask(ctx, principal, taskID); err != nil {
		v.logger.ErrorContext(ctx, "error deleting todo",
			slog.String("todo_id", taskID.String()),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("%w: %w", ErrMutationFailed, err)
	}

	v.refetch(ctx, principal)

	return nil
}

func (v *View) StartEditing(id, title string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.editTodoID = id
	v.editTitle = title
}

// SaveEdit renames the task to the trimmed edit title. Edit mode is left only
// on success.
func (v *View) SaveEdit(ctx context.Context, principal domainuser.Principal, id string) error {
	if principal.IsZero() {
		return ErrNoSession
	}

	v.mu.Lock()
	raw := v.editTitle
	v.mu.Unlock()

	taskID, err := domaintask.NewIDFromString(id)
	if err != nil {
		v.logger.WarnContext(ctx, "invalid todo id", slog.String("error", err.Error()))

		return fmt.Errorf("%w: %w", ErrMutationFailed, err)
	}

	title, err := domaintask.NewTitle(raw)
	if err != nil {
		v.logger.ErrorContext(ctx, "error editing todo",
			slog.String("todo_id", taskID.String()),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("%w: %w", ErrMutationFailed, err)
	}

	if err := v.taskRepo.UpdateTaskTitle(ctx, principal, taskID, title); err != nil {
		v.logger.ErrorContext(ctx, "error editing todo",
			slog.String("todo_id", taskID.String()),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("%w: %w", ErrMutationFailed, err)
	}

	v.refetch(ctx, principal)
	v.CancelEdit()

	return nil
}

func (v *View) CancelEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.editTodoID = ""
	v.editTitle = ""
}

// refetch runs after a successful mutation. Its failure is already logged by
// FetchTodos and leaves the list unchanged.
func (v *View) refetch(ctx context.Context, principal domainuser.Principal) {
	_ = v.FetchTodos(ctx, principal)
}
