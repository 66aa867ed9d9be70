package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal/web"
	"github.com/dmitrymomot/portfolio/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("no panic", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, middlewares.Recover()(ok)(newTestContext(rec, req)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("handler error passes through", func(t *testing.T) {
		t.Parallel()

		want := errors.New("boom")
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		err := middlewares.Recover()(func(web.Context) error {
			return want
		})(newTestContext(httptest.NewRecorder(), req))
		assert.ErrorIs(t, err, want)
	})

	t.Run("panic becomes PanicError with stack", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)

		err := middlewares.Recover()(func(web.Context) error {
			panic("kaboom")
		})(newTestContext(httptest.NewRecorder(), req))

		pe, isPanic := middlewares.AsPanicError(err)
		require.True(t, isPanic)
		assert.Equal(t, "kaboom", pe.Value)
		assert.NotEmpty(t, pe.Stack)
		assert.Equal(t, "panic: kaboom", err.Error())
	})

	t.Run("stack capture disabled", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)

		err := middlewares.Recover(middlewares.WithRecoverDisablePrintStack())(func(web.Context) error {
			panic(errors.New("bad"))
		})(newTestContext(httptest.NewRecorder(), req))

		pe, isPanic := middlewares.AsPanicError(err)
		require.True(t, isPanic)
		assert.Nil(t, pe.Stack)
	})

	t.Run("stack size bound", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)

		err := middlewares.Recover(middlewares.WithRecoverStackSize(64))(func(web.Context) error {
			panic(1)
		})(newTestContext(httptest.NewRecorder(), req))

		pe, _ := middlewares.AsPanicError(err)
		require.NotNil(t, pe)
		assert.LessOrEqual(t, len(pe.Stack), 64)
	})

	t.Run("error handler answers 500", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := newTestContext(rec, req)

		err := middlewares.Recover()(func(web.Context) error {
			panic("x")
		})(c)
		_ = web.JSONErrorHandler(c, err)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
	})
}
