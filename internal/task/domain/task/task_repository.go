package task

import (
	"context"

	"github.com/KasumiMercury/todo-web/internal/task/domain/user"
)

//go:generate mockgen -source=task_repository.go -destination=mock_task_repository.go -package=task

// TaskRepository scopes every operation to the principal's own tasks.
// Updates and deletes that match no task owned by the principal return ErrTaskNotFound.
type TaskRepository interface {
	ListTasks(ctx context.Context, principal user.Principal) ([]*Task, error)
	CreateTask(ctx context.Context, principal user.Principal, title Title) (*Task, error)
	UpdateTaskCompletion(ctx context.Context, principal user.Principal, id ID, isCompleted bool) error
	UpdateTaskTitle(ctx context.Context, principal user.Principal, id ID, title Title) error
	DeleteTask(ctx context.Context, principal user.Principal, id ID) error
}
