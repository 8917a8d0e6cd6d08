package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/tsk/internal/repositories"
	"github.com/desertthunder/tsk/internal/server"
	"github.com/desertthunder/tsk/internal/shared"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
)

// Serve runs the task service until interrupted.
//
// Tasks persist to the configured SQLite database unless --ephemeral asks
// for an in-memory store.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		} else {
			r.logger.Warn("failed to load config, using current settings", "error", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)

	var repo repositories.TaskRepository
	if cmd.Bool("ephemeral") {
		r.logger.Info("serving from an in-memory store")
		repo = repositories.NewMemoryTaskRepository()
	} else {
		db, err := shared.NewDatabase(config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		repo = repositories.NewSQLTaskRepository(db)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(config, r.logger, repo).Run(ctx)
}
