package session

import "errors"

var (
	ErrSessionSecretMissing   = errors.New("session secret is required")
	ErrSessionDurationInvalid = errors.New("session duration must be positive")
	ErrCookieSecureInvalid    = errors.New("session cookie secure flag must be a boolean")
	ErrCookieNameEmpty        = errors.New("session cookie name must be specified")
)
