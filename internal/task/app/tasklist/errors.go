package tasklist

import (
	"errors"

	domaintask "github.com/KasumiMercury/todo-web/internal/task/domain/task"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrBusy           = errors.New("an add is already in progress")
	ErrFetchFailed    = errors.New("failed to fetch todos")
	ErrMutationFailed = errors.New("failed to update todos")
	ErrTitleEmpty     = domaintask.ErrTitleEmpty
	ErrTaskNotFound   = domaintask.ErrTaskNotFound
)
