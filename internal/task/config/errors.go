package config

import "errors"

var (
	ErrStoreInvalid           = errors.New("task store must be one of postgrest, postgres, memory")
	ErrViewIdleTimeoutInvalid = errors.New("view idle timeout must be a positive duration")
)
