package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/portfolio/pkg/logger"
)

const defaultMaxWorkers = 20

// Manager enqueues and runs tasks on river.
// Jobs may be enqueued before Start; they run once workers start.
type Manager struct {
	pool     *pgxpool.Pool
	client   *river.Client[pgx.Tx]
	registry *registry
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewManager builds the river client with every registered task.
func NewManager(pool *pgxpool.Pool, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}

	queues := map[string]river.QueueConfig{
		river.QueueDefault: {MaxWorkers: cfg.maxWorkers},
	}
	for name, n := range cfg.queues {
		queues[name] = river.QueueConfig{MaxWorkers: n}
	}

	periodic := make([]*river.PeriodicJob, 0, len(cfg.schedules))
	for _, task := range cfg.schedules {
		sched, err := parseCronSchedule(task.Schedule())
		if err != nil {
			return nil, fmt.Errorf("%w %q for %s: %w", ErrInvalidSchedule, task.Schedule(), task.Name(), err)
		}
		name := task.Name()
		periodic = append(periodic, river.NewPeriodicJob(sched,
			func() (river.JobArgs, *river.InsertOpts) {
				return &taskArgs{TaskName: name}, nil
			},
			&river.PeriodicJobOpts{},
		))
		cfg.registry.register(name, scheduledExecutor{task: task})
	}

	w := &worker{registry: cfg.registry, logger: cfg.logger}
	workers := river.NewWorkers()
	river.AddWorker(workers, w)

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:       queues,
		Workers:      workers,
		PeriodicJobs: periodic,
		Logger:       cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create client: %w", err)
	}

	m := &Manager{
		pool:     pool,
		client:   client,
		registry: cfg.registry,
		logger:   cfg.logger,
	}
	w.enqueuer = m
	return m, nil
}

// Start begins processing jobs.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}
	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("job: start client: %w", err)
	}

	m.started = true
	m.logger.Info("job manager started", slog.Any("tasks", m.registry.names()))
	return nil
}

// Stop waits for running jobs to finish or ctx to expire.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}
	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("job: stop client: %w", err)
	}

	m.started = false
	m.logger.Info("job manager stopped")
	return nil
}

// StartFunc adapts Start to a startup hook.
func (m *Manager) StartFunc() func(context.Context) error {
	return m.Start
}

// Shutdown adapts Stop to a shutdown hook.
func (m *Manager) Shutdown() func(context.Context) error {
	return m.Stop
}

// Enqueue inserts a job for a registered task.
func (m *Manager) Enqueue(ctx context.Context, name string, payload any, opts ...EnqueueOption) error {
	args, io, err := m.prepare(name, payload, opts...)
	if err != nil {
		return err
	}
	if _, err := m.client.Insert(ctx, args, io); err != nil {
		return fmt.Errorf("job: enqueue %s: %w", name, err)
	}
	return nil
}

// EnqueueTx inserts a job inside tx. The job becomes visible when tx commits
// and disappears with it on rollback.
func (m *Manager) EnqueueTx(ctx context.Context, tx pgx.Tx, name string, payload any, opts ...EnqueueOption) error {
	args, io, err := m.prepare(name, payload, opts...)
	if err != nil {
		return err
	}
	if _, err := m.client.InsertTx(ctx, tx, args, io); err != nil {
		return fmt.Errorf("job: enqueue %s: %w", name, err)
	}
	return nil
}

func (m *Manager) prepare(name string, payload any, opts ...EnqueueOption) (*taskArgs, *river.InsertOpts, error) {
	if _, ok := m.registry.get(name); !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return buildInsert(name, payload, opts...)
}

type worker struct {
	river.WorkerDefaults[taskArgs]
	enqueuer Enqueuer
	registry *registry
	logger   *slog.Logger
}

func (w *worker) Work(ctx context.Context, j *river.Job[taskArgs]) error {
	name := j.Args.TaskName
	log := w.logger.With(
		slog.String("task", name),
		slog.Int64("job_id", j.ID),
		slog.Int("attempt", j.Attempt),
	)

	exec, ok := w.registry.get(name)
	if !ok {
		log.ErrorContext(ctx, "no handler for task")
		return river.JobCancel(fmt.Errorf("%w: %s", ErrUnknownTask, name))
	}

	start := time.Now()
	err := exec.Execute(WithEnqueuer(ctx, w.enqueuer), j.Args.Payload)
	switch {
	case err == nil:
		log.DebugContext(ctx, "task completed", slog.Duration("duration", time.Since(start)))
		return nil
	case errors.Is(err, ErrInvalidPayload) || IsPermanent(err):
		log.ErrorContext(ctx, "task cancelled", slog.Any("error", err))
		return river.JobCancel(err)
	default:
		log.WarnContext(ctx, "task failed", slog.Int("max_attempts", j.MaxAttempts), slog.Any("error", err))
		return err
	}
}

type cronSchedule struct {
	schedule cron.Schedule
}

func (s cronSchedule) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

func parseCronSchedule(expr string) (river.PeriodicSchedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	s, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}
	return cronSchedule{schedule: s}, nil
}
