package main

import (
	"context"
	"os"

	"github.com/KasumiMercury/todo-web/internal/config"
	"github.com/KasumiMercury/todo-web/internal/observability"
	"github.com/KasumiMercury/todo-web/internal/observability/logging"
)

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     cfg.Log.ServiceName,
			Version:  Version,
			Revision: os.Getenv("REVISION"),
		},
		Environment:   cfg.Log.Environment,
		Level:         cfg.Log.Level,
		DefaultModule: logging.Module("todo-web"),
		TracesStdout:  cfg.Tracing.Stdout,
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
