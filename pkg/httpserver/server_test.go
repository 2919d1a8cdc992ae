package httpserver_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validate/pkg/httpserver"
	"github.com/dmitrymomot/validate/pkg/logger"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
}

func start(t *testing.T, ctx context.Context, srv *httpserver.Server) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, okHandler()) }()

	select {
	case <-srv.Ready():
	case err := <-done:
		require.FailNow(t, "run returned early", "%v", err)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "server did not start")
	}
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		require.FailNow(t, "run did not finish")
		return nil
	}
}

func TestRun_ContextCancel(t *testing.T) {
	t.Parallel()

	var stopped atomic.Bool
	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithShutdownTimeout(time.Second),
		httpserver.WithLogger(logger.Discard()),
		httpserver.WithStopHook(func(context.Context) error {
			stopped.Store(true)
			return nil
		}),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := start(t, ctx, srv)

	resp, err := http.Get("http://" + srv.Addr())
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, wait(t, done))
	assert.True(t, stopped.Load())
}

func TestShutdown_Manual(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"), httpserver.WithLogger(logger.Discard()))
	done := start(t, context.Background(), srv)

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, wait(t, done))

	// repeated calls are no-ops
	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestShutdown_StopHookError(t *testing.T) {
	t.Parallel()

	hookErr := errors.New("close failed")
	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithLogger(logger.Discard()),
		httpserver.WithStopHook(func(context.Context) error { return hookErr }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := start(t, ctx, srv)

	cancel()
	err := wait(t, done)
	require.ErrorIs(t, err, httpserver.ErrShutdown)
	require.ErrorIs(t, err, hookErr)
}

func TestRun_AddressInUse(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	var stopped atomic.Int32
	srv := httpserver.New(
		httpserver.WithAddr(ln.Addr().String()),
		httpserver.WithLogger(logger.Discard()),
		httpserver.WithStopHook(func(context.Context) error {
			stopped.Add(1)
			return nil
		}),
	)
	err = srv.Run(context.Background(), okHandler())
	require.ErrorIs(t, err, httpserver.ErrStart)
	assert.Empty(t, srv.Addr())
	assert.Equal(t, int32(1), stopped.Load())

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.Equal(t, int32(1), stopped.Load())
}

// failingListener fails every Accept with a permanent error.
type failingListener struct {
	err error
}

func (l failingListener) Accept() (net.Conn, error) { return nil, l.err }
func (l failingListener) Close() error              { return nil }
func (l failingListener) Addr() net.Addr            { return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)} }

func TestRun_ServeFailureRunsStopHooks(t *testing.T) {
	t.Parallel()

	acceptErr := errors.New("accept failed")
	hookErr := errors.New("close failed")
	var stopped atomic.Int32
	srv := httpserver.New(
		httpserver.WithListener(failingListener{err: acceptErr}),
		httpserver.WithLogger(logger.Discard()),
		httpserver.WithStopHook(func(context.Context) error {
			stopped.Add(1)
			return hookErr
		}),
	)

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), okHandler()) }()
	err := wait(t, done)

	require.ErrorIs(t, err, httpserver.ErrStart)
	require.ErrorIs(t, err, acceptErr)
	require.ErrorIs(t, err, hookErr)
	assert.Equal(t, int32(1), stopped.Load())

	// the hooks already ran; a later Shutdown reports the same result
	require.ErrorIs(t, srv.Shutdown(context.Background()), hookErr)
	assert.Equal(t, int32(1), stopped.Load())
}

func TestRun_WithListener(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := httpserver.New(httpserver.WithListener(ln), httpserver.WithLogger(logger.Discard()))
	ctx, cancel := context.WithCancel(context.Background())
	done := start(t, ctx, srv)
	assert.Equal(t, ln.Addr().String(), srv.Addr())

	resp, err := http.Get("http://" + srv.Addr())
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, wait(t, done))
}

func TestRun_Twice(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"), httpserver.WithLogger(logger.Discard()))
	ctx, cancel := context.WithCancel(context.Background())
	done := start(t, ctx, srv)

	require.ErrorIs(t, srv.Run(ctx, okHandler()), httpserver.ErrStart)

	cancel()
	require.NoError(t, wait(t, done))
}

func TestOptions_Panics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { httpserver.WithAddr("") })
	assert.Panics(t, func() { httpserver.WithShutdownTimeout(0) })
	assert.Panics(t, func() { httpserver.WithReadTimeout(-time.Second) })
	assert.Panics(t, func() { httpserver.WithIdleTimeout(0) })
	assert.Panics(t, func() { httpserver.WithStopHook(nil) })
	assert.Panics(t, func() { httpserver.WithListener(nil) })
}
