package config

import "errors"

var (
	ErrPersistenceLoad   = errors.New("failed to load persistence config")
	ErrBackendLoad       = errors.New("failed to load backend config")
	ErrAuthLoad          = errors.New("failed to load auth config")
	ErrTaskLoad          = errors.New("failed to load task config")
	ErrServerLoad        = errors.New("failed to load server config")
	ErrConfigFile        = errors.New("failed to read config file")
	ErrConfigFileUnknown = errors.New("config file has unknown keys")
	ErrBackendRequired   = errors.New("backend connection is required by the selected auth provider or task store")
	ErrStoreNeedsGoTrue  = errors.New("postgrest task store requires the gotrue auth provider")
	ErrPostgresRequired  = errors.New("postgres task store requires POSTGRES_DSN")
	ErrEnvironmentValue  = errors.New("ENV must be one of dev, prod")
)
