package server_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora/backend/core/server"
)

func TestConfig_Addr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ":5000", server.Config{Port: 5000}.Addr())
	assert.Equal(t, "127.0.0.1:8080", server.Config{Host: "127.0.0.1", Port: 8080}.Addr())
}

func TestNewFromConfig_InvalidPort(t *testing.T) {
	t.Parallel()

	for _, port := range []int{0, -1, 70000} {
		_, err := server.NewFromConfig(server.Config{Port: port})
		assert.ErrorIs(t, err, server.ErrInvalidPort)
	}
}

func waitForAddr(t *testing.T, srv *server.Server) string {
	t.Helper()
	var addr string
	require.Eventually(t, func() bool {
		addr = srv.Addr()
		return addr != "127.0.0.1:0"
	}, 2*time.Second, 5*time.Millisecond)
	return addr
}

func TestServer_RunAndShutdown(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, handler) }()

	addr := waitForAddr(t, srv)

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	assert.ErrorIs(t, srv.Run(ctx, handler), server.ErrServerAlreadyRunning)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ListenError(t *testing.T) {
	t.Parallel()

	srv := server.New("256.0.0.1:99999")
	assert.Error(t, srv.Run(context.Background(), http.NotFoundHandler()))
}
