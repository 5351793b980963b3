// Package health serves liveness and readiness probes.
package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"

	defaultCheckTimeout = 2 * time.Second
)

// CheckFunc reports a dependency as unhealthy by returning an error.
type CheckFunc func(ctx context.Context) error

type CheckResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

type Response struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

type Checker struct {
	mu      sync.RWMutex
	version string
	timeout time.Duration
	checks  map[string]CheckFunc
	logger  *slog.Logger
}

func NewChecker(version string) *Checker {
	return &Checker{
		version: version,
		timeout: defaultCheckTimeout,
		checks:  make(map[string]CheckFunc),
		logger:  slog.Default().WithGroup("health"),
	}
}

func (c *Checker) Register(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checks[name] = check
}

// Check runs every registered check concurrently, each under its own timeout.
func (c *Checker) Check(ctx context.Context) Response {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]CheckResult, len(checks))
	)

	for name, check := range checks {
		wg.Add(1)

		go func() {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			result := CheckResult{Status: StatusHealthy}

			if err := check(checkCtx); err != nil {
				result = CheckResult{Status: StatusUnhealthy, Error: err.Error()}

				c.logger.WarnContext(ctx, "dependency check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}()
	}

	wg.Wait()

	status := StatusHealthy

	for _, result := range results {
		if result.Status != StatusHealthy {
			status = StatusUnhealthy
		}
	}

	return Response{Status: status, Version: c.version, Checks: results}
}

func RedisCheck(client *redis.Client) CheckFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

func DatabaseCheck(db *gorm.DB) CheckFunc {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.PingContext(ctx)
	}
}

// Pinger is satisfied by backend.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

func PingCheck(p Pinger) CheckFunc {
	return p.Ping
}
