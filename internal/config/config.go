// Package config assembles the per-module configurations and checks that
// they fit together.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	authconfig "github.com/KasumiMercury/todo-web/internal/auth/config"
	"github.com/KasumiMercury/todo-web/internal/backend"
	"github.com/KasumiMercury/todo-web/internal/config/persistence"
	"github.com/KasumiMercury/todo-web/internal/observability/logging"
	taskconfig "github.com/KasumiMercury/todo-web/internal/task/config"
)

const (
	httpAddrEnv     = "HTTP_ADDR"
	logLevelEnv     = "LOG_LEVEL"
	environmentEnv  = "ENV"
	serviceNameEnv  = "SERVICE_NAME"
	tracesStdoutEnv = "OTEL_TRACES_STDOUT"

	defaultHTTPAddr    = ":8080"
	defaultServiceName = "todo-web"
)

type ServerConfig struct {
	Addr string
}

type LogConfig struct {
	Level       slog.Level
	Environment logging.Environment
	ServiceName string
}

type TracingConfig struct {
	Stdout bool
}

type Config struct {
	Server      ServerConfig
	Log         LogConfig
	Tracing     TracingConfig
	Backend     *backend.Config
	Auth        *authconfig.AuthConfig
	Task        *taskconfig.Config
	Persistence *persistence.Config
}

func Load() (*Config, error) {
	if err := applyFile(); err != nil {
		return nil, err
	}

	server, logCfg, tracing, err := loadServer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerLoad, err)
	}

	persistenceCfg, err := persistence.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceLoad, err)
	}

	backendCfg, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendLoad, err)
	}

	authCfg, err := authconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthLoad, err)
	}

	taskCfg, err := taskconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTaskLoad, err)
	}

	cfg := &Config{
		Server:      server,
		Log:         logCfg,
		Tracing:     tracing,
		Backend:     backendCfg,
		Auth:        authCfg,
		Task:        taskCfg,
		Persistence: persistenceCfg,
	}

	return cfg, cfg.Validate()
}

// NeedsBackend reports whether any selected component calls the managed backend.
func (c *Config) NeedsBackend() bool {
	return c.Auth.Provider == authconfig.ProviderGoTrue || c.Task.Store == taskconfig.StorePostgREST
}

func (c *Config) Validate() error {
	switch c.Log.Environment {
	case logging.EnvDev, logging.EnvProd:
	default:
		return fmt.Errorf("%w, got: %q", ErrEnvironmentValue, c.Log.Environment)
	}

	if c.NeedsBackend() {
		if err := c.Backend.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrBackendRequired, err)
		}
	}

	if c.Task.Store == taskconfig.StorePostgREST && c.Auth.Provider != authconfig.ProviderGoTrue {
		return ErrStoreNeedsGoTrue
	}

	if c.Task.Store == taskconfig.StorePostgres && c.Persistence.PostgresDSN == "" {
		return ErrPostgresRequired
	}

	return nil
}

func loadServer() (ServerConfig, LogConfig, TracingConfig, error) {
	level, err := logging.ParseLevel(os.Getenv(logLevelEnv))
	if err != nil {
		return ServerConfig{}, LogConfig{}, TracingConfig{}, err
	}

	stdout := false

	if raw := strings.TrimSpace(os.Getenv(tracesStdoutEnv)); raw != "" {
		stdout, err = strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, LogConfig{}, TracingConfig{}, fmt.Errorf("%s: %w", tracesStdoutEnv, err)
		}
	}

	return ServerConfig{Addr: getEnv(httpAddrEnv, defaultHTTPAddr)},
		LogConfig{
			Level:       level,
			Environment: logging.Environment(strings.ToLower(getEnv(environmentEnv, string(logging.EnvDev)))),
			ServiceName: getEnv(serviceNameEnv, defaultServiceName),
		},
		TracingConfig{Stdout: stdout},
		nil
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}

	return defaultVal
}
