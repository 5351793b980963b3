package task

import (
	"strings"
	"time"

	"github.com/KasumiMercury/todo-web/internal/task/domain/user"
)

// ID is assigned by the store and is otherwise opaque.
type ID string

func NewIDFromString(idStr string) (ID, error) {
	trimmed := strings.TrimSpace(idStr)
	if trimmed == "" {
		return "", ErrIDEmpty
	}

	return ID(trimmed), nil
}

func (id ID) String() string {
	return string(id)
}

// Title is a task title with surrounding whitespace removed. It is never empty.
type Title string

func NewTitle(raw string) (Title, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrTitleEmpty
	}

	return Title(trimmed), nil
}

func IsBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

func (t Title) String() string {
	return string(t)
}

type Task struct {
	id          ID
	userID      user.ID
	title       string
	isCompleted bool
	createdAt   time.Time
}

// NewTask rebuilds a task read from a store. Titles are taken as stored.
func NewTask(
	id ID,
	userID user.ID,
	title string,
	isCompleted bool,
	createdAt time.Time,
) (*Task, error) {
	if id == "" {
		return nil, ErrIDEmpty
	}

	if userID == "" {
		return nil, ErrUserIDEmpty
	}

	normalizedCreatedAt := createdAt
	if !createdAt.IsZero() {
		normalizedCreatedAt = createdAt.UTC().Truncate(time.Microsecond)
	}

	return &Task{
		id:          id,
		userID:      userID,
		title:       title,
		isCompleted: isCompleted,
		createdAt:   normalizedCreatedAt,
	}, nil
}

func (t *Task) ID() ID {
	return t.id
}

func (t *Task) UserID() user.ID {
	return t.userID
}

func (t *Task) Title() string {
	return t.title
}

func (t *Task) IsCompleted() bool {
	return t.isCompleted
}

func (t *Task) CreatedAt() time.Time {
	return t.createdAt
}
