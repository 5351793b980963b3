package auth

import "errors"

var (
	ErrConfigMissing      = errors.New("auth config is not configured")
	ErrSessionRepoMissing = errors.New("session repository is not configured")
	ErrProviderMissing    = errors.New("auth provider is not configured")
	ErrBackendMissing     = errors.New("backend client is required for the gotrue provider")
)
