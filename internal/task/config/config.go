package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	storeEnv           = "TASK_STORE"
	viewIdleTimeoutEnv = "TASK_VIEW_IDLE_TIMEOUT"

	defaultViewIdleTimeout = time.Hour
)

// Store selects where task rows live.
type Store string

const (
	// StorePostgREST uses the managed backend's data API as the signed-in user.
	StorePostgREST Store = "postgrest"
	// StorePostgres talks to the todos table directly through gorm.
	StorePostgres Store = "postgres"
	// StoreMemory keeps rows in process memory. Development and tests only.
	StoreMemory Store = "memory"

	defaultStore = StorePostgREST
)

type Config struct {
	Store Store
	// ViewIdleTimeout is how long an unused task list view is kept.
	ViewIdleTimeout time.Duration
}

func Load() (*Config, error) {
	store := Store(strings.ToLower(getEnv(storeEnv, string(defaultStore))))

	idleTimeout := defaultViewIdleTimeout

	if raw := getEnv(viewIdleTimeoutEnv, ""); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrViewIdleTimeoutInvalid, err)
		}

		idleTimeout = parsed
	}

	cfg := &Config{
		Store:           store,
		ViewIdleTimeout: idleTimeout,
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrStoreInvalid)
	}

	switch c.Store {
	case StorePostgREST, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("%w, got: %q", ErrStoreInvalid, c.Store)
	}

	if c.ViewIdleTimeout <= 0 {
		return fmt.Errorf("%w, got: %s", ErrViewIdleTimeoutInvalid, c.ViewIdleTimeout)
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}

	return defaultVal
}
