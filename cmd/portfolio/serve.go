package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/portfolio/internal/config"
	"github.com/dmitrymomot/portfolio/internal/contact"
	"github.com/dmitrymomot/portfolio/internal/content"
	"github.com/dmitrymomot/portfolio/internal/repository"
	"github.com/dmitrymomot/portfolio/internal/web"
	"github.com/dmitrymomot/portfolio/middlewares"
	"github.com/dmitrymomot/portfolio/pkg/db"
	"github.com/dmitrymomot/portfolio/pkg/job"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
	"github.com/dmitrymomot/portfolio/pkg/mailer/resend"
	"github.com/dmitrymomot/portfolio/pkg/ratelimit"
	"github.com/dmitrymomot/portfolio/pkg/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load[config.Config]()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

// teardown collects release hooks in reverse acquisition order.
type teardown []func(context.Context) error

func (t *teardown) push(fn func(context.Context) error) {
	*t = append([]func(context.Context) error{fn}, *t...)
}

func (t teardown) run(ctx context.Context) error {
	var errs []error
	for _, fn := range t {
		errs = append(errs, fn(ctx))
	}
	return errors.Join(errs...)
}

func (t teardown) abort(ctx context.Context, err error) error {
	return errors.Join(err, t.run(context.WithoutCancel(ctx)))
}

func serve(ctx context.Context, cfg *config.Config) error {
	var td teardown

	log, closeLog := logger.New(cfg.Log, middlewares.RequestIDExtractor())
	slog.SetDefault(log)
	td.push(closeLog)

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return td.abort(ctx, err)
	}
	td.push(db.Shutdown(pool))

	if cfg.Database.AutoMigrate {
		if err := migrate(ctx, pool, cfg.Database.MigrationsTable, log); err != nil {
			return td.abort(ctx, err)
		}
	}
	queries := repository.New(pool)

	var rdb goredis.UniversalClient
	if cfg.Redis.Enabled() {
		rdb, err = redis.Open(ctx, cfg.Redis.URL, cfg.Redis.Options()...)
		if err != nil {
			return td.abort(ctx, err)
		}
		td.push(redis.Shutdown(rdb))
	}

	policy := ratelimit.Policy{Max: cfg.Contact.RateLimitMax, Window: cfg.Contact.RateLimitWindow}
	var (
		limiter ratelimit.Limiter
		caches  content.Caches
	)
	if rdb != nil {
		limiter = ratelimit.NewRedis(rdb, policy, ratelimit.WithRedisPrefix("ratelimit:contact"))
		caches = content.NewRedisCaches(rdb, cfg.Content.CacheTTL)
	} else {
		mem := ratelimit.NewMemory(policy, ratelimit.WithMaxKeys(cfg.RateLimitMaxKeys))
		td.push(func(context.Context) error { return mem.Close() })
		limiter = mem
		caches = content.NewMemoryCaches(cfg.Content.CacheTTL)
	}
	td.push(func(context.Context) error { return caches.Close() })

	sender, err := resend.New(cfg.Resend)
	if err != nil {
		return td.abort(ctx, err)
	}
	renderer := mailer.NewRenderer(contact.Templates(), mailer.WithButtonColor(cfg.Mailer.ButtonColor))
	notifier := contact.NewMailNotifier(mailer.New(sender, renderer, cfg.Mailer), cfg.Contact, cfg.Resend.SenderEmail)

	jobs, err := job.NewManager(pool,
		job.WithLogger(log),
		job.WithMaxWorkers(cfg.JobMaxWorkers),
		job.WithTask(contact.NewNotifyOwnerTask(notifier, cfg.Contact.NotifyMaxAttempts)),
		job.WithTask(contact.NewSendConfirmationTask(notifier, queries, log)),
		job.WithScheduledTask(content.NewPruneTask(queries, cfg.Content, log)),
	)
	if err != nil {
		return td.abort(ctx, err)
	}
	td.push(jobs.Shutdown())

	svcOpts := []contact.ServiceOption{contact.WithLogger(log)}
	if cfg.Contact.Outbox() {
		svcOpts = append(svcOpts, contact.WithOutbox(pool, jobs,
			func(tx pgx.Tx) contact.Store { return queries.WithTx(tx) },
			cfg.Contact.NotifyMaxAttempts,
		))
	}
	contactSvc := contact.NewService(queries, notifier, svcOpts...)
	contentSvc := content.NewService(queries, caches, cfg.Content)

	buckets := ratelimit.NewBuckets(cfg.Content.RatePerSecond, cfg.Content.Burst)
	bucketsCtx, stopBuckets := context.WithCancel(context.WithoutCancel(ctx))
	td.push(func(context.Context) error { stopBuckets(); return nil })

	checks := []web.HealthOption{
		web.WithReadinessCheck("postgres", db.Healthcheck(pool)),
		web.WithReadinessCheck("jobs", job.Healthcheck(jobs)),
	}
	if rdb != nil {
		checks = append(checks, web.WithReadinessCheck("redis", redis.Healthcheck(rdb)))
	}

	app := web.New(
		web.WithLogger(log),
		web.WithErrorHandler(web.JSONErrorHandler),
		web.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger("/health/live", "/health/ready"),
			middlewares.Timeout(cfg.HTTP.RequestTimeout),
			middlewares.Recover(),
		),
		web.WithHealthChecks(checks...),
		web.WithHandlers(web.Mount("/api", []web.Middleware{middlewares.PublicCORS()},
			contact.NewHandler(contactSvc,
				contact.WithLegacyErrorStatus(cfg.Contact.LegacyErrorStatus),
				contact.WithMiddleware(middlewares.Quota(limiter)),
			),
			content.NewHandler(contentSvc, middlewares.Throttle(buckets)),
		)),
	)

	opts := []web.RunOption{
		web.WithContext(ctx),
		web.Logger(log),
		web.Server(cfg.HTTP),
		web.StartupHook(jobs.StartFunc()),
		web.StartupHook(func(context.Context) error {
			go buckets.Run(bucketsCtx)
			return nil
		}),
	}
	for _, fn := range td {
		opts = append(opts, web.ShutdownHook(fn))
	}

	log.Info("starting portfolio",
		slog.String("env", cfg.AppEnv),
		slog.String("delivery_mode", cfg.Contact.DeliveryMode),
		slog.Bool("redis", rdb != nil),
	)
	return app.Run(cfg.HTTP.Address, opts...)
}
