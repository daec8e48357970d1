package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/konega2/portfolio-sub001/internal/logging"
	"github.com/konega2/portfolio-sub001/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeHTTP_GracefulShutdown(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveHTTP(ctx, srv, lis) }()

	resp, err := http.Get("http://" + lis.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeHTTP_ListenerError(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	lis.Close()

	err = serveHTTP(context.Background(), &http.Server{}, lis)
	assert.Error(t, err)
}

func TestNewLimiter(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, newLimiter(ctx, &config.Config{LoginRateLimit: 0}, logging.Nop{}))

	rl := newLimiter(ctx, &config.Config{LoginRateLimit: 5, LoginRateWindow: time.Minute}, logging.Nop{})
	require.NotNil(t, rl)
	rl.Close()

	// unreachable redis falls back to memory
	rl = newLimiter(ctx, &config.Config{LoginRateLimit: 5, LoginRateWindow: time.Minute, RedisAddr: "127.0.0.1:1"}, logging.Nop{})
	require.NotNil(t, rl)
	assert.True(t, rl.Allow(ctx, "k", 5, time.Minute).Allowed)
	rl.Close()
}

func TestNewApp_DatabaseUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c := &config.Config{}
	c.LoadDefaults()
	c.SecretKey = "k"
	c.DatabaseDSN = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"

	_, err := NewApp(ctx, c, logging.Nop{})
	assert.Error(t, err)
}
