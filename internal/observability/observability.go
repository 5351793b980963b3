// Package observability wires logging and tracing together for the process.
package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/KasumiMercury/todo-web/internal/observability/logging"
	"github.com/KasumiMercury/todo-web/internal/observability/tracing"
)

type Config struct {
	ServiceInfo   logging.ServiceInfo
	Environment   logging.Environment
	Level         slog.Level
	DefaultModule logging.Module
	TracesStdout  bool
	Output        io.Writer
}

type Resources struct {
	Logger *slog.Logger
	tracer *tracing.Provider
}

// Init installs the default logger and the global tracer provider.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	logger := logging.Init(logging.Config{
		Service:       cfg.ServiceInfo,
		Environment:   cfg.Environment,
		Level:         cfg.Level,
		DefaultModule: cfg.DefaultModule,
		Output:        cfg.Output,
	})

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    cfg.ServiceInfo.Name,
		ServiceVersion: cfg.ServiceInfo.Version,
		Environment:    string(cfg.Environment),
		Stdout:         cfg.TracesStdout,
		Output:         cfg.Output,
	})
	if err != nil {
		return nil, errors.Join(ErrTracingInit, err)
	}

	tp.Install()

	return &Resources{
		Logger: logger,
		tracer: tp,
	}, nil
}

// Shutdown flushes spans still buffered by the exporter.
func (r *Resources) Shutdown(ctx context.Context) error {
	if r == nil || r.tracer == nil {
		return nil
	}

	return r.tracer.Shutdown(ctx)
}

var ErrTracingInit = errors.New("failed to initialize tracing")
