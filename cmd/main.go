package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KasumiMercury/todo-web/internal/auth"
	authconfig "github.com/KasumiMercury/todo-web/internal/auth/config"
	domainsession "github.com/KasumiMercury/todo-web/internal/auth/domain/session"
	"github.com/KasumiMercury/todo-web/internal/auth/infra/local"
	authrepository "github.com/KasumiMercury/todo-web/internal/auth/infra/repository"
	"github.com/KasumiMercury/todo-web/internal/backend"
	"github.com/KasumiMercury/todo-web/internal/config"
	"github.com/KasumiMercury/todo-web/internal/health"
	"github.com/KasumiMercury/todo-web/internal/task"
	taskconfig "github.com/KasumiMercury/todo-web/internal/task/config"
	domainuser "github.com/KasumiMercury/todo-web/internal/task/domain/user"
	taskrepository "github.com/KasumiMercury/todo-web/internal/task/infra/repository"
	"github.com/KasumiMercury/todo-web/internal/web"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	shutdownTimeout = 10 * time.Second
	pruneInterval   = 5 * time.Minute
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	checker := health.NewChecker(Version)

	var backendClient *backend.Client
	if cfg.NeedsBackend() {
		backendClient, err = backend.NewClient(cfg.Backend)
		if err != nil {
			return fmt.Errorf("failed to create backend client: %w", err)
		}

		checker.Register("backend", health.PingCheck(backendClient))
	}

	sessions, closeSessions, err := newSessionRepository(cfg, checker)
	if err != nil {
		return err
	}
	defer closeSessions()

	provider, err := auth.NewProvider(cfg.Auth, backendClient)
	if err != nil {
		return fmt.Errorf("failed to create auth provider: %w", err)
	}

	authModule, err := auth.NewModule(cfg.Auth, auth.Repositories{
		Sessions: sessions,
		Provider: provider,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}

	stores := task.Stores{Backend: backendClient}

	if localProvider, ok := provider.(*local.Provider); ok {
		stores.TokenOwner = localTokenOwner(localProvider)
	}

	if cfg.Task.Store == taskconfig.StorePostgres {
		db, err := openDatabase(cfg.Persistence.PostgresDSN)
		if err != nil {
			return err
		}

		stores.DB = db

		checker.Register("database", health.DatabaseCheck(db))
	}

	taskRepo, err := task.NewTaskRepository(cfg.Task, stores)
	if err != nil {
		return fmt.Errorf("failed to create task repository: %w", err)
	}

	taskModule, err := task.NewModule(cfg.Task, task.Repositories{Tasks: taskRepo})
	if err != nil {
		return fmt.Errorf("failed to initialize task module: %w", err)
	}

	handler, err := web.NewHandler(web.Dependencies{
		Auth:   authModule,
		Tasks:  taskModule,
		Health: checker,
	})
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}

	go pruneViews(ctx, taskModule, cfg.Task.ViewIdleTimeout)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.HTTPHandler(cfg.Log.ServiceName),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)

	go func() {
		slog.Info("starting HTTP server",
			slog.String("addr", cfg.Server.Addr),
			slog.String("auth_provider", string(cfg.Auth.Provider)),
			slog.String("task_store", string(cfg.Task.Store)),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}

		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	return nil
}

func newSessionRepository(cfg *config.Config, checker *health.Checker) (domainsession.SessionRepository, func(), error) {
	if !cfg.Persistence.UsesRedis() {
		if cfg.Auth.Provider != authconfig.ProviderLocal {
			slog.Warn("sessions are kept in memory; users sign in again after a restart")
		}

		return authrepository.NewInMemorySessionRepository(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Persistence.RedisAddr,
		Password: cfg.Persistence.RedisPassword,
		DB:       cfg.Persistence.RedisDB,
	})

	checker.Register("redis", health.RedisCheck(client))

	closeFn := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}

	return authrepository.NewSessionRepository(client), closeFn, nil
}

func openDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := taskrepository.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate task schema: %w", err)
	}

	return db, nil
}

// localTokenOwner lets the in-memory task store check tokens issued by the
// in-memory auth provider.
func localTokenOwner(p *local.Provider) taskrepository.TokenOwner {
	return func(accessToken string) (domainuser.ID, bool) {
		id, ok := p.UserIDForToken(accessToken)
		if !ok {
			return "", false
		}

		return domainuser.ID(string(id)), true
	}
}

func pruneViews(ctx context.Context, module *task.Module, idle time.Duration) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := module.Views.Prune(now.Add(-idle)); n > 0 {
				slog.Debug("pruned idle task list views", slog.Int("count", n))
			}
		}
	}
}
