package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/portfolio/pkg/logger"
)

// TaskPruneAnalytics is the scheduled retention sweep.
const TaskPruneAnalytics = "analytics.prune"

// Pruner deletes analytics rows older than a cutoff.
type Pruner interface {
	DeleteAnalyticsEventsBefore(ctx context.Context, before time.Time) (int64, error)
}

// PruneTask deletes analytics events past the retention period.
type PruneTask struct {
	store     Pruner
	logger    *slog.Logger
	now       func() time.Time
	schedule  string
	retention time.Duration
}

func NewPruneTask(store Pruner, cfg Config, log *slog.Logger) *PruneTask {
	if log == nil {
		log = logger.NewNope()
	}
	return &PruneTask{
		store:     store,
		logger:    log,
		now:       time.Now,
		schedule:  cfg.PruneSchedule,
		retention: cfg.Retention,
	}
}

func (t *PruneTask) Name() string     { return TaskPruneAnalytics }
func (t *PruneTask) Schedule() string { return t.schedule }

func (t *PruneTask) Handle(ctx context.Context) error {
	cutoff := t.now().Add(-t.retention)
	n, err := t.store.DeleteAnalyticsEventsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("%w: prune analytics: %w", ErrStore, err)
	}
	t.logger.InfoContext(ctx, "analytics pruned", slog.Int64("deleted", n), slog.Time("before", cutoff))
	return nil
}
