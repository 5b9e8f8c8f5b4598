package main

import (
	"context"
	"fmt"

	"task-editor/internal/cli"
	"task-editor/internal/config"
	"task-editor/internal/idgen"
	"task-editor/internal/logging"
	"task-editor/internal/services"
	"task-editor/internal/validation"
)

// newApp wires logging, the blob store, the persistence bridge and the task
// service for cfg. The returned cleanup closes the store.
func newApp(ctx context.Context, cfg *config.Config, open bool) (*cli.App, func() error, error) {
	logger, err := logging.New(logging.Options{
		Format:  cfg.Application.LogFormat,
		Verbose: cfg.Application.Verbose,
	})
	if err != nil {
		return nil, nil, err
	}
	ctx = logging.WithContext(ctx, logger)
	ctx, _ = logging.WithSessionID(ctx)
	logger = logging.FromContext(ctx)

	store, err := config.CreateStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	service, err := newTaskService(store, cfg)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	logger.Debug("storage ready", "backend", cfg.Storage.Backend, "key", cfg.Storage.Key)

	if open {
		openCtx, cancel := context.WithTimeout(ctx, cfg.Application.Timeout)
		defer cancel()
		if err := service.Open(openCtx); err != nil {
			logger.Error("failed to load tasks", "backend", cfg.Storage.Backend, "error", err)
			store.Close()
			return nil, nil, err
		}
	}

	app := cli.NewApp(service, cfg, cli.WithStore(store), cli.WithLogger(logger))
	return app, store.Close, nil
}

func newTaskService(store config.Storage, cfg *config.Config) (services.TaskService, error) {
	bridge, err := config.CreateBridge(store, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create persistence bridge: %w", err)
	}
	ids, err := idgen.New(cfg.Tasks.IDStrategy, nil)
	if err != nil {
		return nil, err
	}
	validator := validation.NewTaskValidatorWithValidator(validation.NewValidatorWithConfig(cfg))

	return services.NewTaskService(bridge,
		services.WithIDGenerator(ids),
		services.WithValidator(validator),
	), nil
}
