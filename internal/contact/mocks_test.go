package contact

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/portfolio/internal/repository"
	"github.com/dmitrymomot/portfolio/pkg/job"
)

type storeMock struct {
	mock.Mock
}

func (m *storeMock) CreateContact(ctx context.Context, arg repository.CreateContactParams) (repository.Contact, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(repository.Contact), args.Error(1)
}

func (m *storeMock) CreateAnalyticsEvent(ctx context.Context, arg repository.CreateAnalyticsEventParams) error {
	return m.Called(ctx, arg).Error(0)
}

type notifierMock struct {
	mock.Mock
}

func (m *notifierMock) NotifyOwner(ctx context.Context, c repository.Contact) error {
	return m.Called(ctx, c).Error(0)
}

func (m *notifierMock) SendConfirmation(ctx context.Context, c repository.Contact) error {
	return m.Called(ctx, c).Error(0)
}

type enqueuerMock struct {
	mock.Mock
}

func (m *enqueuerMock) Enqueue(ctx context.Context, name string, payload any, opts ...job.EnqueueOption) error {
	return m.Called(ctx, name, payload).Error(0)
}

func (m *enqueuerMock) EnqueueTx(ctx context.Context, tx pgx.Tx, name string, payload any, opts ...job.EnqueueOption) error {
	return m.Called(ctx, tx, name, payload).Error(0)
}

// fakeTx records how a transaction ended. Unused pgx.Tx methods panic.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Commit(context.Context) error   { tx.committed = true; return nil }
func (tx *fakeTx) Rollback(context.Context) error { tx.rolledBack = true; return nil }

type fakeBeginner struct {
	tx *fakeTx
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) { return b.tx, nil }

// apiError mimics a delivery API rejection.
type apiError struct {
	retry bool
}

func (e apiError) Error() string   { return "Failed to send email: Unprocessable Entity - bad" }
func (e apiError) Retryable() bool { return e.retry }
