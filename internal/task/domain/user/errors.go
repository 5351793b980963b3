package user

import "errors"

var (
	ErrIDEmpty        = errors.New("user ID cannot be empty")
	ErrTokenMissing   = errors.New("access token is required")
	ErrPrincipalEmpty = errors.New("principal is not set")
)
