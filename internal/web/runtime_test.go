package web_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal/web"
)

func TestApp_Run(t *testing.T) {
	t.Parallel()

	app := web.New(web.WithHandlers(routes(func(r web.Router) {
		r.GET("/ping", func(c web.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"pong": "ok"})
		})
	})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}

	addrCh := make(chan net.Addr, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run("127.0.0.1:0",
			web.WithContext(ctx),
			web.StartupHook(record("start")),
			web.ShutdownHook(record("stop-1")),
			web.ShutdownHook(record("stop-2")),
			web.OnReady(func(a net.Addr) { addrCh <- a }),
		)
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/ping", addr))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.Equal(t, []string{"start", "stop-1", "stop-2"}, order)
}

func TestApp_RunStartupFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	stopped := false

	err := web.New().Run("127.0.0.1:0",
		web.StartupHook(func(context.Context) error { return boom }),
		web.ShutdownHook(func(context.Context) error { stopped = true; return nil }),
	)

	require.ErrorIs(t, err, boom)
	assert.True(t, stopped)
}
