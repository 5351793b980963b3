package task

import "errors"

var (
	ErrConfigMissing   = errors.New("task config is not configured")
	ErrTaskRepoMissing = errors.New("task repository is not configured")
	ErrBackendMissing  = errors.New("backend client is required for the postgrest store")
	ErrDatabaseMissing = errors.New("database is required for the postgres store")
)
