package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Closer flushes and releases logger outputs. Register it as a shutdown hook.
type Closer func(ctx context.Context) error

// New builds a JSON logger writing to stdout, optionally to a rotating file
// and to Sentry. Extractors run on every record for every output.
//
// Output failures never prevent startup: a file sink that cannot be created or
// a Sentry client that fails to initialize is reported on stdout and skipped.
func New(cfg Config, extractors ...ContextExtractor) (*slog.Logger, Closer) {
	return newLogger(os.Stdout, cfg, extractors...)
}

func newLogger(stdout io.Writer, cfg Config, extractors ...ContextExtractor) (*slog.Logger, Closer) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	base := slog.NewJSONHandler(stdout, opts)
	bootstrap := slog.New(base)

	handlers := []slog.Handler{base}
	var closers []Closer

	if cfg.File != "" {
		w, err := newFileWriter(cfg)
		if err != nil {
			bootstrap.Error("log file sink disabled", slog.String("file", cfg.File), slog.Any("error", err))
		} else {
			handlers = append(handlers, slog.NewJSONHandler(w, opts))
			closers = append(closers, func(context.Context) error { return w.Close() })
		}
	}

	if cfg.Sentry.DSN != "" {
		h, flush, err := newSentryHandler(cfg.Sentry)
		if err != nil {
			bootstrap.Error("sentry disabled", slog.Any("error", err))
		} else {
			handlers = append(handlers, h)
			closers = append(closers, flush)
		}
	}

	var h slog.Handler = base
	if len(handlers) > 1 {
		h = newMultiHandler(handlers...)
	}

	return slog.New(NewLogHandlerDecorator(h, extractors...)), func(ctx context.Context) error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c(ctx))
		}
		return errors.Join(errs...)
	}
}

func newFileWriter(cfg Config) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, errors.Join(ErrFileSink, err)
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}, nil
}
