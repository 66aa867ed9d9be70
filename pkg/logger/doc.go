// Package logger builds the application's slog logger.
//
// Records are written as JSON to stdout and, when configured, to a rotating
// file (lumberjack) and to Sentry. Context extractors add request-scoped
// attributes to every record:
//
//	log, closeLog := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	defer closeLog(context.Background())
//
//	log.InfoContext(ctx, "contact stored", slog.String("contact_id", id))
//	// {"level":"INFO","msg":"contact stored","contact_id":"…","request_id":"…"}
//
// Environment:
//
//	LOG_LEVEL          debug | info | warn | error (default: info)
//	LOG_FILE           path of the rotating file sink (disabled when empty)
//	LOG_MAX_SIZE_MB    rotate after this size (default: 50)
//	LOG_MAX_BACKUPS    rotated files kept (default: 5)
//	LOG_MAX_AGE_DAYS   rotated files age limit (default: 28)
//	SENTRY_DSN         enables Sentry; errors become issues, warnings and errors become logs
//	SENTRY_ENVIRONMENT (default: production)
//
// Outputs that cannot be initialized are reported on stdout and skipped.
package logger
