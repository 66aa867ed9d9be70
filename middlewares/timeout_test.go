package middlewares_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal/web"
	"github.com/dmitrymomot/portfolio/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("fast handler", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, middlewares.Timeout(time.Second)(ok)(newTestContext(rec, req)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("deadline reaches handler context", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)

		var hasDeadline bool
		err := middlewares.Timeout(time.Second)(func(c web.Context) error {
			_, hasDeadline = c.Context().Deadline()
			return nil
		})(newTestContext(httptest.NewRecorder(), req))
		require.NoError(t, err)
		assert.True(t, hasDeadline)
	})

	t.Run("slow handler times out with 504", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := newTestContext(rec, req)

		release := make(chan struct{})
		defer close(release)

		err := middlewares.Timeout(20*time.Millisecond)(func(web.Context) error {
			<-release
			return nil
		})(c)

		te, isTimeout := middlewares.AsTimeoutError(err)
		require.True(t, isTimeout)
		assert.Equal(t, 20*time.Millisecond, te.Duration)

		_ = web.JSONErrorHandler(c, err)
		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	})

	t.Run("handler writes after deadline are dropped", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		rec := httptest.NewRecorder()
		c := newTestContext(rec, req)

		release := make(chan struct{})
		lateWrite := make(chan error, 1)

		err := middlewares.Timeout(20*time.Millisecond)(func(hc web.Context) error {
			<-hc.Done()
			<-release
			lateWrite <- hc.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save contact form"})
			return nil
		})(c)

		require.True(t, middlewares.IsTimeoutError(err))
		require.NoError(t, web.JSONErrorHandler(c, err))

		close(release)
		select {
		case werr := <-lateWrite:
			assert.ErrorIs(t, werr, http.ErrHandlerTimeout)
		case <-time.After(time.Second):
			t.Fatal("handler did not finish")
		}

		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
		assertSingleJSONBody(t, rec)
	})

	t.Run("headers set by the handler reach the response", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := newTestContext(rec, req)
		c.SetHeader("X-Request-ID", "abc")

		err := middlewares.Timeout(time.Second)(func(hc web.Context) error {
			assert.Equal(t, "abc", hc.Response().Header().Get("X-Request-ID"))
			hc.SetHeader("Retry-After", "7")
			return hc.NoContent(http.StatusTooManyRequests)
		})(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "7", rec.Header().Get("Retry-After"))
		assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
	})

	t.Run("non-positive duration uses default", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)

		var deadline time.Time
		err := middlewares.Timeout(0)(func(c web.Context) error {
			deadline, _ = c.Context().Deadline()
			return nil
		})(newTestContext(httptest.NewRecorder(), req))
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(middlewares.DefaultTimeout), deadline, time.Second)
	})
}

func TestTimeout_ThroughApp(t *testing.T) {
	t.Parallel()

	finished := make(chan struct{})
	app := web.New(
		web.WithErrorHandler(web.JSONErrorHandler),
		web.WithMiddleware(middlewares.Timeout(30*time.Millisecond), middlewares.Recover()),
		web.WithHandlers(routes(func(r web.Router) {
			r.POST("/contact", func(c web.Context) error {
				defer close(finished)
				<-c.Done()
				return web.ErrInternal("Failed to save contact form", web.WithError(c.Err()))
			})
		})),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contact", nil))
	<-finished

	assert.Contains(t, []int{http.StatusGatewayTimeout, http.StatusInternalServerError}, rec.Code)
	assertSingleJSONBody(t, rec)
}

type routes func(r web.Router)

func (f routes) Routes(r web.Router) { f(r) }

func assertSingleJSONBody(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	dec := json.NewDecoder(rec.Body)
	var body map[string]string
	require.NoError(t, dec.Decode(&body))
	assert.NotEmpty(t, body["error"])

	var extra any
	assert.True(t, errors.Is(dec.Decode(&extra), io.EOF), "response carries more than one JSON value")
}
