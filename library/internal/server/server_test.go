package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Astemirdum/elibrary-service/library/config"
	"github.com/stretchr/testify/require"
)

func TestServer_RunStop(t *testing.T) {
	cfg := config.HTTPServer{
		Host:         "127.0.0.1",
		Port:         "0",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
	srv := NewServer(cfg, http.NotFoundHandler())
	require.Equal(t, "127.0.0.1:0", srv.srv.Addr)

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
	require.NoError(t, <-done)
}
