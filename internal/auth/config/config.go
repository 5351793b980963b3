package config

import (
	"fmt"
	"os"
	"strings"

	sessioncfg "github.com/KasumiMercury/todo-web/internal/auth/config/session"
)

const providerEnv = "AUTH_PROVIDER"

// Provider selects who verifies credentials and issues tokens.
type Provider string

const (
	// ProviderGoTrue delegates accounts to the managed backend's auth API.
	ProviderGoTrue Provider = "gotrue"
	// ProviderLocal keeps accounts in process memory. Development and tests only.
	ProviderLocal Provider = "local"

	defaultProvider = ProviderGoTrue
)

// AuthConfig holds all configuration for the auth module.
type AuthConfig struct {
	Provider Provider
	Session  *sessioncfg.Config
}

func Load() (*AuthConfig, error) {
	sessionConfig, err := sessioncfg.Load()
	if err != nil {
		return nil, fmt.Errorf("load session config: %w", err)
	}

	provider := Provider(strings.ToLower(strings.TrimSpace(os.Getenv(providerEnv))))
	if provider == "" {
		provider = defaultProvider
	}

	cfg := &AuthConfig{
		Provider: provider,
		Session:  sessionConfig,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *AuthConfig) Validate() error {
	switch c.Provider {
	case ProviderGoTrue, ProviderLocal:
	default:
		return fmt.Errorf("%w, got: %q", ErrProviderInvalid, c.Provider)
	}

	if c.Session == nil {
		return ErrSessionConfigMissing
	}

	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionConfigMissing, err)
	}

	return nil
}
