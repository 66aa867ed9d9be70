package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/portfolio/internal/config"
	"github.com/dmitrymomot/portfolio/internal/migrations"
	"github.com/dmitrymomot/portfolio/pkg/db"
	"github.com/dmitrymomot/portfolio/pkg/job"
	"github.com/dmitrymomot/portfolio/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load[config.Migrate]()
		if err != nil {
			return err
		}

		log, closeLog := logger.New(cfg.Log)
		defer func() { _ = closeLog(context.WithoutCancel(cmd.Context())) }()

		ctx := cmd.Context()
		pool, err := db.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		return migrate(ctx, pool, cfg.Database.MigrationsTable, log)
	},
}

// migrate applies the application schema and then the job queue schema.
func migrate(ctx context.Context, pool *pgxpool.Pool, table string, log *slog.Logger) error {
	if err := db.Migrate(ctx, pool, migrations.FS, table, log); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	if err := job.Migrate(ctx, pool, log); err != nil {
		return fmt.Errorf("migrate jobs: %w", err)
	}
	return nil
}
