package repository

import "errors"

var (
	ErrSessionRequired       = errors.New("session is required")
	ErrSessionAlreadyExpired = errors.New("session already expired")
)
