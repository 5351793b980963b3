package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	domaintask "github.com/KasumiMercury/todo-web/internal/task/domain/task"
	domainuser "github.com/KasumiMercury/todo-web/internal/task/domain/user"
)

// TokenOwner reports which user an access token was issued to.
type TokenOwner func(accessToken string) (domainuser.ID, bool)

type memoryTodo struct {
	id          int64
	title       string
	isCompleted bool
	userID      domainuser.ID
	insertedAt  time.Time
}

type inMemoryTaskRepository struct {
	mu     sync.Mutex
	lastID int64
	todos  []memoryTodo
	owner  TokenOwner
	now    func() time.Time
}

func NewInMemoryTaskRepository() domaintask.TaskRepository {
	return newInMemoryTaskRepository(nil)
}

// NewInMemoryTaskRepositoryWithOwner rejects principals whose access token
// owner does not match their user ID.
func NewInMemoryTaskRepositoryWithOwner(owner TokenOwner) domaintask.TaskRepository {
	return newInMemoryTaskRepository(owner)
}

func newInMemoryTaskRepository(owner TokenOwner) *inMemoryTaskRepository {
	return &inMemoryTaskRepository{
		owner: owner,
		now:   time.Now,
	}
}

func (r *inMemoryTaskRepository) ListTasks(ctx context.Context, principal domainuser.Principal) ([]*domaintask.Task, error) {
	if err := r.authorize(principal); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := make([]*domaintask.Task, 0)

	for _, todo := range r.todos {
		if todo.userID != principal.UserID() {
			continue
		}

		task, err := todo.toDomain()
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (r *inMemoryTaskRepository) CreateTask(ctx context.Context, principal domainuser.Principal, title domaintask.Title) (*domaintask.Task, error) {
	if err := r.authorize(principal); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++

	todo := memoryTodo{
		id:         r.lastID,
		title:      title.String(),
		userID:     principal.UserID(),
		insertedAt: r.now().UTC(),
	}
	r.todos = append(r.todos, todo)

	return todo.toDomain()
}

func (r *inMemoryTaskRepository) UpdateTaskCompletion(ctx context.Context, principal domainuser.Principal, id domaintask.ID, isCompleted bool) error {
	return r.mutate(principal, id, func(todo *memoryTodo) {
		todo.isCompleted = isCompleted
	})
}

func (r *inMemoryTaskRepository) UpdateTaskTitle(ctx context.Context, principal domainuser.Principal, id domaintask.ID, title domaintask.Title) error {
	return r.mutate(principal, id, func(todo *memoryTodo) {
		todo.title = title.String()
	})
}

func (r *inMemoryTaskRepository) DeleteTask(ctx context.Context, principal domainuser.Principal, id domaintask.ID) error {
	if err := r.authorize(principal); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.indexOf(principal.UserID(), id)
	if !ok {
		return domaintask.ErrTaskNotFound
	}

	r.todos = append(r.todos[:idx], r.todos[idx+1:]...)

	return nil
}

func (r *inMemoryTaskRepository) mutate(principal domainuser.Principal, id domaintask.ID, apply func(*memoryTodo)) error {
	if err := r.authorize(principal); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.indexOf(principal.UserID(), id)
	if !ok {
		return domaintask.ErrTaskNotFound
	}

	apply(&r.todos[idx])

	return nil
}

func (r *inMemoryTaskRepository) indexOf(userID domainuser.ID, id domaintask.ID) (int, bool) {
	rowID, ok := parseRowID(id)
	if !ok {
		return 0, false
	}

	for i, todo := range r.todos {
		if todo.id == rowID && todo.userID == userID {
			return i, true
		}
	}

	return 0, false
}

func (r *inMemoryTaskRepository) authorize(principal domainuser.Principal) error {
	if principal.IsZero() {
		return ErrPrincipalRequired
	}

	if r.owner == nil {
		return nil
	}

	owner, ok := r.owner(principal.Token().AccessToken)
	if !ok || owner != principal.UserID() {
		return ErrTokenRejected
	}

	return nil
}

func (t memoryTodo) toDomain() (*domaintask.Task, error) {
	return domaintask.NewTask(
		domaintask.ID(strconv.FormatInt(t.id, 10)),
		t.userID,
		t.title,
		t.isCompleted,
		t.insertedAt,
	)
}
