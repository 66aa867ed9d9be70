package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/db"
)

// fakeTx records commit and rollback calls. Other pgx.Tx methods are unused.
type fakeTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestWithTx(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		t.Parallel()

		tx := &fakeTx{}
		err := db.WithTx(ctx, fakeBeginner{tx: tx}, func(pgx.Tx) error { return nil })
		require.NoError(t, err)
		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()

		tx := &fakeTx{}
		boom := errors.New("boom")
		err := db.WithTx(ctx, fakeBeginner{tx: tx}, func(pgx.Tx) error { return boom })
		require.ErrorIs(t, err, boom)
		assert.False(t, tx.committed)
		assert.True(t, tx.rolledBack)
	})

	t.Run("rolls back and re-panics", func(t *testing.T) {
		t.Parallel()

		tx := &fakeTx{}
		assert.PanicsWithValue(t, "kaboom", func() {
			_ = db.WithTx(ctx, fakeBeginner{tx: tx}, func(pgx.Tx) error { panic("kaboom") })
		})
		assert.True(t, tx.rolledBack)
	})

	t.Run("begin failure", func(t *testing.T) {
		t.Parallel()

		err := db.WithTx(ctx, fakeBeginner{err: errors.New("down")}, func(pgx.Tx) error {
			t.Fatal("fn must not run")
			return nil
		})
		require.ErrorIs(t, err, db.ErrBeginTx)
	})

	t.Run("commit failure", func(t *testing.T) {
		t.Parallel()

		tx := &fakeTx{commitErr: errors.New("serialization")}
		err := db.WithTx(ctx, fakeBeginner{tx: tx}, func(pgx.Tx) error { return nil })
		require.ErrorIs(t, err, db.ErrCommitTx)
	})
}

func TestConnect_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := db.Connect(context.Background(), db.Config{ConnectionString: "://bad"})
	require.ErrorIs(t, err, db.ErrFailedToParseDBConfig)
}
