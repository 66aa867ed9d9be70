package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_NilPool(t *testing.T) {
	t.Parallel()

	_, err := NewManager(nil)
	require.ErrorIs(t, err, ErrPoolRequired)
}

func TestManager_EnqueueUnknownTask(t *testing.T) {
	t.Parallel()

	m := &Manager{registry: newRegistry()}
	_, _, err := m.prepare("missing", nil)
	require.ErrorIs(t, err, ErrUnknownTask)
}

func TestParseCronSchedule(t *testing.T) {
	t.Parallel()

	t.Run("valid expressions", func(t *testing.T) {
		t.Parallel()

		for _, expr := range []string{"* * * * *", "0 3 * * *", "*/15 * * * *", "0 0 * * 0"} {
			s, err := parseCronSchedule(expr)
			require.NoError(t, err, expr)
			now := time.Now()
			assert.True(t, s.Next(now).After(now), expr)
		}
	})

	t.Run("invalid expressions", func(t *testing.T) {
		t.Parallel()

		for _, expr := range []string{"", "* * *", "* * * * * *", "60 * * * *", "nope"} {
			_, err := parseCronSchedule(expr)
			assert.Error(t, err, expr)
		}
	})

	t.Run("daily at three", func(t *testing.T) {
		t.Parallel()

		s, err := parseCronSchedule("0 3 * * *")
		require.NoError(t, err)

		base := time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 1, 2, 3, 0, 0, 0, time.UTC), s.Next(base))
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	t.Run("nil manager", func(t *testing.T) {
		t.Parallel()

		err := Healthcheck(nil)(context.Background())
		require.ErrorIs(t, err, ErrHealthcheckFailed)
		require.ErrorIs(t, err, errManagerNil)
	})

	t.Run("not started", func(t *testing.T) {
		t.Parallel()

		err := Healthcheck(&Manager{registry: newRegistry()})(context.Background())
		require.ErrorIs(t, err, ErrHealthcheckFailed)
		require.ErrorIs(t, err, errManagerNotStarted)
	})
}
