package middlewares

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/portfolio/internal/web"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout bounds the request context by d. Downstream calls that honour the
// context (database, outbound HTTP) are cancelled at the deadline. If the
// handler has not returned by then, a *TimeoutError is returned and anything
// the handler goroutine writes afterwards is discarded with
// http.ErrHandlerTimeout. A handler that already started its response keeps it.
func Timeout(d time.Duration) web.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()

			c.SetContext(ctx)

			tw := newTimeoutWriter(c.Response())
			inner := web.NewContext(tw, c.Request(), c.Logger())

			done := make(chan error, 1)
			go func() {
				done <- next(inner)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				tw.expire()
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", d.String())
					return &TimeoutError{Duration: d}
				}
				return ctx.Err()
			}
		}
	}
}

// timeoutWriter gives the handler goroutine its own header map and forwards
// writes to the real writer until expire is called.
type timeoutWriter struct {
	w       http.ResponseWriter
	header  http.Header
	mu      sync.Mutex
	expired bool
	started bool
}

func newTimeoutWriter(w http.ResponseWriter) *timeoutWriter {
	return &timeoutWriter{w: w, header: w.Header().Clone()}
}

func (tw *timeoutWriter) Header() http.Header { return tw.header }

// start copies the handler's headers to the real writer. Callers hold mu.
func (tw *timeoutWriter) start() {
	if tw.started {
		return
	}
	tw.started = true
	dst := tw.w.Header()
	for k := range dst {
		if _, ok := tw.header[k]; !ok {
			delete(dst, k)
		}
	}
	maps.Copy(dst, tw.header)
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.expired {
		return
	}
	tw.start()
	tw.w.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.expired {
		return 0, http.ErrHandlerTimeout
	}
	tw.start()
	return tw.w.Write(b)
}

func (tw *timeoutWriter) Flush() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if f, ok := tw.w.(http.Flusher); ok && !tw.expired {
		f.Flush()
	}
}

// expire stops forwarding. Once it returns, the handler goroutine can no
// longer touch the real writer.
func (tw *timeoutWriter) expire() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.expired = true
}
