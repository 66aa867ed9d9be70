package job

import "log/slog"

type config struct {
	registry   *registry
	queues     map[string]int
	logger     *slog.Logger
	schedules  []ScheduledTask
	maxWorkers int
}

func newConfig() *config {
	return &config{
		registry:   newRegistry(),
		queues:     make(map[string]int),
		maxWorkers: defaultMaxWorkers,
	}
}

// Option configures the Manager.
type Option func(*config)

// WithTask registers a task. The payload type is inferred from Handle:
//
//	func (t *NotifyOwner) Name() string { return "contact.notify_owner" }
//	func (t *NotifyOwner) Handle(ctx context.Context, p NotifyPayload) error { … }
//
//	job.WithTask(contact.NewNotifyOwnerTask(…))
func WithTask[P any](task Task[P]) Option {
	return func(c *config) {
		c.registry.register(task.Name(), typedExecutor[P]{task: task})
	}
}

// WithScheduledTask registers a periodic task. Schedule returns a five-field
// cron expression (minute hour day month weekday).
func WithScheduledTask(task ScheduledTask) Option {
	return func(c *config) {
		c.schedules = append(c.schedules, task)
	}
}

// WithQueue adds a named queue with its own worker count.
func WithQueue(name string, workers int) Option {
	return func(c *config) {
		if workers > 0 {
			c.queues[name] = workers
		}
	}
}

// WithLogger sets the logger used by the manager and river.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers sets the worker count of the default queue. Default: 20.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}
