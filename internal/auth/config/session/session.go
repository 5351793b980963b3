package session

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	sessionSecretEnv       = "SESSION_SECRET"
	sessionDurationEnv     = "SESSION_DURATION"
	sessionCookieSecureEnv = "SESSION_COOKIE_SECURE"

	defaultSessionDuration = 24 * time.Hour
	defaultCookieName      = "todo_session"
)

// Config contains session management settings.
type Config struct {
	Duration     time.Duration
	Secret       string
	CookieName   string
	CookieSecure bool
}

func Load() (*Config, error) {
	secret, err := getEnvRequired(sessionSecretEnv)
	if err != nil {
		return nil, err
	}

	secure, err := getEnvBool(sessionCookieSecureEnv, false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Duration:     getEnvDuration(sessionDurationEnv, defaultSessionDuration),
		Secret:       secret,
		CookieName:   defaultCookieName,
		CookieSecure: secure,
	}, nil
}

func (c *Config) Validate() error {
	if c.Secret == "" {
		return ErrSessionSecretMissing
	}

	if c.Duration <= 0 {
		return fmt.Errorf("%w, got: %v", ErrSessionDurationInvalid, c.Duration)
	}

	if c.CookieName == "" {
		return ErrCookieNameEmpty
	}

	return nil
}

func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%w: %s", ErrSessionSecretMissing, key)
	}

	return val, nil
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrCookieSecureInvalid, key, val)
	}

	return b, nil
}
