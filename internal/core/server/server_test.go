package server

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"trendkit/internal/core/config"
	"trendkit/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew verifies that New creates a Server with the correct configuration.
func TestNew(t *testing.T) {
	cfg := &config.AppConfig{
		ServerPort: 8080,
	}

	logger.Init("development", "debug")
	srv := New(cfg, nil)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.App)
	assert.Equal(t, cfg, srv.cfg)
}

// TestHealth verifies the health endpoint and the Ray ID header.
func TestHealth(t *testing.T) {
	srv := New(&config.AppConfig{Environment: "test"}, prometheus.NewRegistry())

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))

	var body HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, HealthResponse{Status: "ok", Environment: "test"}, body)
}

// TestMetrics verifies that the given registry is exposed.
func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "trendkit_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Add(3)

	srv := New(&config.AppConfig{}, reg)

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "trendkit_test_total 3")
}

// TestSwagger verifies that the API documentation is served.
func TestSwagger(t *testing.T) {
	srv := New(&config.AppConfig{}, prometheus.NewRegistry())

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/swagger/doc.json", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "/trends/trending")
}

// TestServer_Run_Error verifies that Run returns an error when binding fails (e.g., privileged port).
func TestServer_Run_Error(t *testing.T) {
	// Privileged port 1 should fail
	cfg := &config.AppConfig{
		ServerPort: 1,
	}
	logger.Init("development", "error")

	srv := New(cfg, prometheus.NewRegistry())

	errCh := make(chan error)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(1 * time.Second):
		srv.Shutdown()
		t.Log("Server unexpectedly started or timed out on Error test")
	}
}

// TestQueryValuesOutliveRequest verifies that values read from one request are not
// rewritten by later requests on the same keep-alive connection.
func TestQueryValuesOutliveRequest(t *testing.T) {
	srv := New(&config.AppConfig{}, prometheus.NewRegistry())
	assert.True(t, srv.App.Config().Immutable)

	var mu sync.Mutex
	var seen []string
	srv.App.Get("/echo", func(c *fiber.Ctx) error {
		mu.Lock()
		seen = append(seen, c.Query("v"))
		mu.Unlock()
		return c.SendStatus(fiber.StatusNoContent)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.App.Listener(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	client := &http.Client{Timeout: 5 * time.Second}
	want := []string{"alpha", "zzzzz", "yyyyy"}
	for _, v := range want {
		resp, err := client.Get("http://" + ln.Addr().String() + "/echo?v=" + v)
		require.NoError(t, err)
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, seen)
}
