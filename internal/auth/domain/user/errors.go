package user

import "errors"

var (
	ErrIDEmpty      = errors.New("user ID must be specified")
	ErrIDGeneration = errors.New("failed to generate user ID")
)
