package config

import "errors"

var (
	ErrSessionConfigMissing = errors.New("session config missing")
	ErrProviderInvalid      = errors.New("auth provider must be gotrue or local")
)
