// Package db wraps pgxpool with startup retries, goose migrations,
// transactions and a readiness check.
//
// Settings come from the environment (see [Config]):
//
//	DATABASE_URL                - postgres connection URL (required)
//	DATABASE_AUTO_MIGRATE       - run migrations on serve (default: true)
//	DATABASE_MIGRATIONS_TABLE   - goose version table (default: schema_migrations)
//	DATABASE_MAX_OPEN_CONNS     - pool size (default: 10)
//	DATABASE_MIN_CONNS          - idle connections kept (default: 2)
//	DATABASE_RETRY_ATTEMPTS     - startup attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - base retry delay (default: 5s)
//
// Typical wiring:
//
//	pool, err := db.Connect(ctx, cfg.DB)
//	if err != nil {
//	    return err
//	}
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log); err != nil {
//	    return err
//	}
//
//	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//	    // queries on tx
//	    return nil
//	})
//
// Errors are wrapped with [errors.Join] so callers can match the sentinels
// in errors.go.
package db
