package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Shutdown must stop the HTTP server before closing the database, and the
// listener goroutine must exit cleanly.
func TestShutdown(t *testing.T) {
	s, app := setupTestServer(t)
	s.app = app

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	serveErr := make(chan error, 1)
	go func() { serveErr <- app.Listener(ln) }()

	base := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/health")
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond, "server never became ready")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-serveErr:
		require.NoError(t, err, "listener should return nil after graceful shutdown")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}

	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.Error(t, sqlDB.Ping(), "database should be closed after shutdown")
}
