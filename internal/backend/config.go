package backend

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	urlEnv     = "BACKEND_URL"
	apiKeyEnv  = "BACKEND_API_KEY"
	timeoutEnv = "BACKEND_TIMEOUT"

	defaultTimeout = 10 * time.Second
)

// Config holds the connection credentials of the managed backend.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

func Load() (*Config, error) {
	timeout := defaultTimeout

	if raw := strings.TrimSpace(os.Getenv(timeoutEnv)); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTimeoutInvalid, err)
		}

		timeout = parsed
	}

	return &Config{
		URL:     strings.TrimSpace(os.Getenv(urlEnv)),
		APIKey:  strings.TrimSpace(os.Getenv(apiKeyEnv)),
		Timeout: timeout,
	}, nil
}

// Configured reports whether a backend URL was supplied at all.
func (c *Config) Configured() bool {
	return c != nil && c.URL != ""
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrURLInvalid)
	}

	if c.URL == "" {
		return fmt.Errorf("%w: %s is empty", ErrURLInvalid, urlEnv)
	}

	parsed, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrURLInvalid, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got: %s", ErrURLInvalid, parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("%w: host is empty", ErrURLInvalid)
	}

	if c.APIKey == "" {
		return fmt.Errorf("%w: %s", ErrAPIKeyMissing, apiKeyEnv)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w, got: %v", ErrTimeoutInvalid, c.Timeout)
	}

	return nil
}
