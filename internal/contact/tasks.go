package contact

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/portfolio/internal/repository"
	"github.com/dmitrymomot/portfolio/pkg/job"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
)

// Task names.
const (
	TaskNotifyOwner      = "contact.notify_owner"
	TaskSendConfirmation = "contact.send_confirmation"
)

// confirmationDedupWindow bounds how long a second confirmation for the same
// contact is suppressed when the owner task is retried after enqueueing it.
const confirmationDedupWindow = 24 * time.Hour

// NotifyOwnerTask sends the owner email and chains the confirmation.
type NotifyOwnerTask struct {
	notifier    Notifier
	maxAttempts int
}

func NewNotifyOwnerTask(n Notifier, maxAttempts int) *NotifyOwnerTask {
	return &NotifyOwnerTask{notifier: n, maxAttempts: maxAttempts}
}

func (t *NotifyOwnerTask) Name() string { return TaskNotifyOwner }

func (t *NotifyOwnerTask) Handle(ctx context.Context, c repository.Contact) error {
	if err := t.notifier.NotifyOwner(ctx, c); err != nil {
		return classify(err)
	}

	jobs, ok := job.EnqueuerFromContext(ctx)
	if !ok {
		return job.Permanent(ErrNoEnqueuer)
	}
	return jobs.Enqueue(ctx, TaskSendConfirmation, c,
		job.Unique(c.ID.String(), confirmationDedupWindow),
		job.MaxAttempts(t.maxAttempts),
		job.Tags("contact"),
	)
}

// SendConfirmationTask sends the confirmation and records the analytics event.
type SendConfirmationTask struct {
	notifier Notifier
	store    Store
	logger   *slog.Logger
}

func NewSendConfirmationTask(n Notifier, store Store, log *slog.Logger) *SendConfirmationTask {
	if log == nil {
		log = logger.NewNope()
	}
	return &SendConfirmationTask{notifier: n, store: store, logger: log}
}

func (t *SendConfirmationTask) Name() string { return TaskSendConfirmation }

func (t *SendConfirmationTask) Handle(ctx context.Context, c repository.Contact) error {
	if err := t.notifier.SendConfirmation(ctx, c); err != nil {
		return classify(err)
	}
	recordSent(ctx, t.store, t.logger, c)
	return nil
}

type retryable interface {
	Retryable() bool
}

// classify marks failures that cannot succeed on retry as permanent: API
// rejections other than throttling or server errors, and messages that fail
// to build.
func classify(err error) error {
	var r retryable
	if errors.As(err, &r) && !r.Retryable() {
		return job.Permanent(err)
	}
	if errors.Is(err, mailer.ErrNoRecipient) ||
		errors.Is(err, mailer.ErrTemplateNotFound) ||
		errors.Is(err, mailer.ErrRenderFailed) {
		return job.Permanent(err)
	}
	return err
}
