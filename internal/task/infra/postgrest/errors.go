package postgrest

import "errors"

var (
	ErrPrincipalRequired = errors.New("principal is required")
	ErrEmptyInsert       = errors.New("insert returned no rows")
	ErrRowIDInvalid      = errors.New("row id must be a string or a number")
)
