package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultAddress           = ":8080"
	defaultReadTimeout       = 15 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultWriteTimeout      = 35 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

type runtimeConfig struct {
	handler       http.Handler
	baseCtx       context.Context
	logger        *slog.Logger
	ready         func(net.Addr)
	address       string
	startupHooks  []func(context.Context) error
	shutdownHooks []func(context.Context) error
	server        ServerConfig
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// runServer starts the HTTP server and blocks until shutdown.
// Shutdown order: stop accepting requests, drain, then shutdown hooks.
func runServer(cfg runtimeConfig) error {
	address := orDefault(cfg.address, orDefault(cfg.server.Address, defaultAddress))
	shutdownTimeout := orDefault(cfg.server.ShutdownTimeout, defaultShutdownTimeout)
	log := cfg.logger

	server := &http.Server{
		Addr:              address,
		Handler:           cfg.handler,
		ReadTimeout:       orDefault(cfg.server.ReadTimeout, defaultReadTimeout),
		ReadHeaderTimeout: orDefault(cfg.server.ReadHeaderTimeout, defaultReadHeaderTimeout),
		WriteTimeout:      orDefault(cfg.server.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:       orDefault(cfg.server.IdleTimeout, defaultIdleTimeout),
		MaxHeaderBytes:    orDefault(cfg.server.MaxHeaderBytes, defaultMaxHeaderBytes),
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}

	baseCtx := cfg.baseCtx
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	for i, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			log.Error("startup hook failed", slog.Int("hook", i), slog.Any("error", err))
			return errors.Join(fmt.Errorf("web: startup hook %d: %w", i, err), shutdown(cfg.shutdownHooks, shutdownTimeout, log))
		}
	}

	ln, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Join(fmt.Errorf("web: listen %s: %w", address, err), shutdown(cfg.shutdownHooks, shutdownTimeout, log))
	}
	if cfg.ready != nil {
		cfg.ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var errs []error
	select {
	case err := <-errCh:
		if err != nil {
			errs = append(errs, err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := runHooks(shutdownCtx, cfg.shutdownHooks, log); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		log.Error("shutdown completed with errors", slog.Any("error", errors.Join(errs...)))
		return errors.Join(errs...)
	}

	log.Info("shutdown completed")
	return nil
}

func shutdown(hooks []func(context.Context) error, timeout time.Duration, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return runHooks(ctx, hooks, log)
}

func runHooks(ctx context.Context, hooks []func(context.Context) error, log *slog.Logger) error {
	var errs []error
	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			log.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
