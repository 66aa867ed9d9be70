package contact

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/portfolio/internal/repository"
	"github.com/dmitrymomot/portfolio/pkg/db"
	"github.com/dmitrymomot/portfolio/pkg/job"
	"github.com/dmitrymomot/portfolio/pkg/logger"
)

// EventContactEmailSent is recorded after both emails went out.
const EventContactEmailSent = "contact_email_sent"

// Store is the persistence the contact flow needs.
type Store interface {
	CreateContact(ctx context.Context, arg repository.CreateContactParams) (repository.Contact, error)
	CreateAnalyticsEvent(ctx context.Context, arg repository.CreateAnalyticsEventParams) error
}

// Notifier sends the two emails of an accepted submission.
type Notifier interface {
	NotifyOwner(ctx context.Context, c repository.Contact) error
	SendConfirmation(ctx context.Context, c repository.Contact) error
}

// TxEnqueuer inserts jobs inside a transaction. *job.Manager implements it.
type TxEnqueuer interface {
	EnqueueTx(ctx context.Context, tx pgx.Tx, name string, payload any, opts ...job.EnqueueOption) error
}

// Service runs an accepted submission through persistence and notification.
type Service struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger
	outbox   *outbox
}

type outbox struct {
	db          db.TxBeginner
	jobs        TxEnqueuer
	store       func(pgx.Tx) Store
	maxAttempts int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// WithOutbox switches the service to outbox delivery: the row and a
// TaskNotifyOwner job are written in one transaction and Submit returns
// after commit. txStore binds the store to the transaction.
func WithOutbox(beginner db.TxBeginner, jobs TxEnqueuer, txStore func(pgx.Tx) Store, maxAttempts int) ServiceOption {
	return func(s *Service) {
		s.outbox = &outbox{db: beginner, jobs: jobs, store: txStore, maxAttempts: maxAttempts}
	}
}

// NewService creates a Service. Without WithOutbox it delivers in-line.
func NewService(store Store, notifier Notifier, opts ...ServiceOption) *Service {
	s := &Service{store: store, notifier: notifier, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores sub and delivers the notifications. Errors wrap
// ErrPersistence or ErrDelivery. Once persisted, the row is kept whatever
// happens to the emails.
func (s *Service) Submit(ctx context.Context, sub Submission) (repository.Contact, error) {
	if s.outbox != nil {
		return s.submitOutbox(ctx, sub)
	}

	c, err := s.store.CreateContact(ctx, newContactParams(sub))
	if err != nil {
		return repository.Contact{}, errors.Join(ErrPersistence, err)
	}

	if err := s.notifier.NotifyOwner(ctx, c); err != nil {
		return c, errors.Join(ErrDelivery, err)
	}
	if err := s.notifier.SendConfirmation(ctx, c); err != nil {
		return c, errors.Join(ErrDelivery, err)
	}

	recordSent(ctx, s.store, s.logger, c)
	return c, nil
}

func (s *Service) submitOutbox(ctx context.Context, sub Submission) (repository.Contact, error) {
	var c repository.Contact
	err := db.WithTx(ctx, s.outbox.db, func(tx pgx.Tx) error {
		var err error
		c, err = s.outbox.store(tx).CreateContact(ctx, newContactParams(sub))
		if err != nil {
			return err
		}
		return s.outbox.jobs.EnqueueTx(ctx, tx, TaskNotifyOwner, c,
			job.MaxAttempts(s.outbox.maxAttempts),
			job.Tags("contact"),
		)
	})
	if err != nil {
		return repository.Contact{}, errors.Join(ErrPersistence, err)
	}
	s.logger.InfoContext(ctx, "contact queued for notification", slog.String("contact_id", c.ID.String()))
	return c, nil
}

func newContactParams(sub Submission) repository.CreateContactParams {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return repository.CreateContactParams{
		ID:      id,
		Name:    sub.Name,
		Email:   sub.Email,
		Subject: sub.Subject,
		Message: sub.Message,
	}
}

type sentMetadata struct {
	Subject   string `json:"subject"`
	FromEmail string `json:"from_email"`
}

// recordSent is best effort: failures are logged and swallowed.
func recordSent(ctx context.Context, store Store, log *slog.Logger, c repository.Contact) {
	meta, err := json.Marshal(sentMetadata{Subject: c.Subject, FromEmail: c.Email})
	if err == nil {
		err = store.CreateAnalyticsEvent(ctx, repository.CreateAnalyticsEventParams{
			EventType: EventContactEmailSent,
			Metadata:  meta,
		})
	}
	if err != nil {
		log.WarnContext(ctx, "failed to record analytics event",
			slog.String("event_type", EventContactEmailSent),
			slog.Any("error", err),
		)
	}
}
