package task

import "errors"

var (
	ErrIDEmpty      = errors.New("task ID cannot be empty")
	ErrUserIDEmpty  = errors.New("user ID cannot be empty")
	ErrTitleEmpty   = errors.New("task title cannot be empty")
	ErrTaskNotFound = errors.New("task not found")
)
