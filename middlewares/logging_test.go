package middlewares_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal/web"
	"github.com/dmitrymomot/portfolio/middlewares"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, path string, h web.HandlerFunc) map[string]any {
		t.Helper()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		req := httptest.NewRequest(http.MethodGet, path, nil)
		c := web.NewContext(httptest.NewRecorder(), req, log)
		_ = middlewares.RequestLogger("/health/live")(h)(c)

		if buf.Len() == 0 {
			return nil
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		return rec
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		rec := run(t, "/api/posts", ok)
		require.NotNil(t, rec)
		assert.Equal(t, "INFO", rec["level"])
		assert.Equal(t, "GET", rec["method"])
		assert.Equal(t, "/api/posts", rec["path"])
		assert.EqualValues(t, 200, rec["status"])
		assert.NotZero(t, rec["size"])
	})

	t.Run("client error", func(t *testing.T) {
		t.Parallel()

		rec := run(t, "/api/posts/x", func(web.Context) error {
			return web.ErrNotFound("Post not found")
		})
		require.NotNil(t, rec)
		assert.Equal(t, "WARN", rec["level"])
		assert.EqualValues(t, 404, rec["status"])
	})

	t.Run("unexpected error", func(t *testing.T) {
		t.Parallel()

		rec := run(t, "/", func(web.Context) error { return errors.New("boom") })
		require.NotNil(t, rec)
		assert.Equal(t, "ERROR", rec["level"])
		assert.EqualValues(t, 500, rec["status"])
		assert.Equal(t, "boom", rec["error"])
	})

	t.Run("skipped path", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, run(t, "/health/live", ok))
	})
}
