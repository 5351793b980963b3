package persistence

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	sessionStoreEnv  = "SESSION_STORE"
	postgresDSNEnv   = "POSTGRES_DSN"
	redisAddrEnv     = "REDIS_ADDR"
	redisPasswordEnv = "REDIS_PASSWORD"
	redisDBEnv       = "REDIS_DB"

	defaultRedisAddr = "localhost:6379"
	defaultRedisDB   = 0
)

// SessionStore selects where local sessions are kept.
type SessionStore string

const (
	SessionStoreMemory SessionStore = "memory"
	SessionStoreRedis  SessionStore = "redis"

	defaultSessionStore = SessionStoreMemory
)

type Config struct {
	SessionStore SessionStore
	// PostgresDSN is only needed when tasks are stored in Postgres directly.
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Load() (*Config, error) {
	sessionStore := SessionStore(strings.ToLower(strings.TrimSpace(os.Getenv(sessionStoreEnv))))
	if sessionStore == "" {
		sessionStore = defaultSessionStore
	}

	redisAddr := strings.TrimSpace(os.Getenv(redisAddrEnv))
	if redisAddr == "" {
		redisAddr = defaultRedisAddr
	}

	redisDB := defaultRedisDB

	if raw := strings.TrimSpace(os.Getenv(redisDBEnv)); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRedisDB, err)
		}

		redisDB = parsed
	}

	cfg := &Config{
		SessionStore:  sessionStore,
		PostgresDSN:   strings.TrimSpace(os.Getenv(postgresDSNEnv)),
		RedisAddr:     redisAddr,
		RedisPassword: os.Getenv(redisPasswordEnv),
		RedisDB:       redisDB,
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrSessionStoreInvalid)
	}

	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.RedisAddr == "" {
			return ErrRedisAddrMissing
		}
	default:
		return fmt.Errorf("%w, got: %q", ErrSessionStoreInvalid, c.SessionStore)
	}

	if c.RedisDB < 0 {
		return fmt.Errorf("%w: must not be negative, got: %d", ErrInvalidRedisDB, c.RedisDB)
	}

	return nil
}

// UsesRedis reports whether a redis client is needed.
func (c *Config) UsesRedis() bool {
	return c.SessionStore == SessionStoreRedis
}
