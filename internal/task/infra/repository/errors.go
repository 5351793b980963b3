package repository

import "errors"

var (
	ErrPrincipalRequired = errors.New("principal is required")
	ErrTokenRejected     = errors.New("access token does not belong to the principal")
)
