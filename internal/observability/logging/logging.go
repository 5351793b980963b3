// Package logging configures the process-wide slog logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module names the part of the application a log record came from.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Config struct {
	Service       ServiceInfo
	Environment   Environment
	Level         slog.Level
	DefaultModule Module
	Output        io.Writer
}

var ErrLevelInvalid = errors.New("log level must be one of debug, info, warn, error")

// ParseLevel accepts the level names used in LOG_LEVEL. Empty means info.
func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w, got: %q", ErrLevelInvalid, raw)
	}
}

// NewLogger builds a logger without installing it. Production writes JSON,
// everything else writes text.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.Environment == EnvProd,
	}

	var base slog.Handler
	if cfg.Environment == EnvProd {
		base = slog.NewJSONHandler(out, opts)
	} else {
		base = slog.NewTextHandler(out, opts)
	}

	handler := newContextHandler(base, cfg.DefaultModule)

	attrs := []any{
		slog.String("service", cfg.Service.Name),
		slog.String("environment", string(cfg.Environment)),
	}

	if cfg.Service.Version != "" {
		attrs = append(attrs, slog.String("version", cfg.Service.Version))
	}

	if cfg.Service.Revision != "" {
		attrs = append(attrs, slog.String("revision", cfg.Service.Revision))
	}

	return slog.New(handler).With(attrs...)
}

// Init installs the logger as slog.Default and returns it.
func Init(cfg Config) *slog.Logger {
	logger := NewLogger(cfg)
	slog.SetDefault(logger)

	return logger
}
