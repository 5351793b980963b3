package persistence

import "errors"

var (
	ErrSessionStoreInvalid = errors.New("session store must be one of memory, redis")
	ErrRedisAddrMissing    = errors.New("redis address is required")
	ErrInvalidRedisDB      = errors.New("invalid redis db value")
)
