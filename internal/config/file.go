package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const fileEnv = "APP_CONFIG_FILE"

// fileConfig mirrors the environment variables as TOML tables.
type fileConfig struct {
	Backend struct {
		URL     string `toml:"url"`
		APIKey  string `toml:"api_key"`
		Timeout string `toml:"timeout"`
	} `toml:"backend"`
	Auth struct {
		Provider string `toml:"provider"`
	} `toml:"auth"`
	Task struct {
		Store           string `toml:"store"`
		ViewIdleTimeout string `toml:"view_idle_timeout"`
	} `toml:"task"`
	Session struct {
		Secret       string `toml:"secret"`
		Duration     string `toml:"duration"`
		CookieSecure *bool  `toml:"cookie_secure"`
	} `toml:"session"`
	Persistence struct {
		SessionStore  string `toml:"session_store"`
		RedisAddr     string `toml:"redis_addr"`
		RedisPassword string `toml:"redis_password"`
		RedisDB       *int   `toml:"redis_db"`
		PostgresDSN   string `toml:"postgres_dsn"`
	} `toml:"persistence"`
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
	Log struct {
		Level   string `toml:"level"`
		Env     string `toml:"env"`
		Service string `toml:"service"`
	} `toml:"log"`
	Tracing struct {
		Stdout *bool `toml:"stdout"`
	} `toml:"tracing"`
}

func (f *fileConfig) values() map[string]string {
	values := map[string]string{
		"BACKEND_URL":            f.Backend.URL,
		"BACKEND_API_KEY":        f.Backend.APIKey,
		"BACKEND_TIMEOUT":        f.Backend.Timeout,
		"AUTH_PROVIDER":          f.Auth.Provider,
		"TASK_STORE":             f.Task.Store,
		"TASK_VIEW_IDLE_TIMEOUT": f.Task.ViewIdleTimeout,
		"SESSION_SECRET":         f.Session.Secret,
		"SESSION_DURATION":       f.Session.Duration,
		"SESSION_STORE":          f.Persistence.SessionStore,
		"REDIS_ADDR":             f.Persistence.RedisAddr,
		"REDIS_PASSWORD":         f.Persistence.RedisPassword,
		"POSTGRES_DSN":           f.Persistence.PostgresDSN,
		"HTTP_ADDR":              f.Server.Addr,
		"LOG_LEVEL":              f.Log.Level,
		"ENV":                    f.Log.Env,
		"SERVICE_NAME":           f.Log.Service,
	}

	if f.Session.CookieSecure != nil {
		values["SESSION_COOKIE_SECURE"] = strconv.FormatBool(*f.Session.CookieSecure)
	}

	if f.Persistence.RedisDB != nil {
		values["REDIS_DB"] = strconv.Itoa(*f.Persistence.RedisDB)
	}

	if f.Tracing.Stdout != nil {
		values["OTEL_TRACES_STDOUT"] = strconv.FormatBool(*f.Tracing.Stdout)
	}

	return values
}

// applyFile fills environment variables that are not already set from the
// TOML file named by APP_CONFIG_FILE. The environment always wins.
func applyFile() error {
	path := strings.TrimSpace(os.Getenv(fileEnv))
	if path == "" {
		return nil
	}

	var fc fileConfig

	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigFile, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return fmt.Errorf("%w: %s", ErrConfigFileUnknown, strings.Join(keys, ", "))
	}

	for key, value := range fc.values() {
		if value == "" || os.Getenv(key) != "" {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("%w: %v", ErrConfigFile, err)
		}
	}

	return nil
}
