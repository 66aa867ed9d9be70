package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/portfolio/internal/web"
)

func newTestContext(rec *httptest.ResponseRecorder, req *http.Request) web.Context {
	return web.NewContext(rec, req, nil)
}

func ok(c web.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
