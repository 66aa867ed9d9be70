package web

import (
	"context"
	"log/slog"
	"net"
)

// RunOption configures the server runtime.
type RunOption func(*runConfig)

type runConfig struct {
	baseCtx       context.Context
	logger        *slog.Logger
	ready         func(net.Addr)
	startupHooks  []func(context.Context) error
	shutdownHooks []func(context.Context) error
	server        ServerConfig
}

func buildRunConfig(opts ...RunOption) *runConfig {
	cfg := &runConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Logger overrides the runtime logger. Defaults to the App logger.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Server applies timeouts and limits from cfg. Zero fields keep defaults.
func Server(cfg ServerConfig) RunOption {
	return func(c *runConfig) {
		c.server = cfg
	}
}

// StartupHook runs fn before the listener accepts requests. Hooks run in
// registration order; the first failure aborts startup.
//
//	web.StartupHook(jobs.StartFunc())
func StartupHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.startupHooks = append(c.startupHooks, fn)
		}
	}
}

// ShutdownHook runs fn after the HTTP server stops. Hooks run in
// registration order and all run even if some fail.
//
//	web.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// WithContext sets the base context; cancelling it triggers shutdown.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}

// OnReady is called with the bound address once the listener is open.
func OnReady(fn func(net.Addr)) RunOption {
	return func(c *runConfig) {
		c.ready = fn
	}
}
