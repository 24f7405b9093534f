package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trendkit/internal/core/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(store *cache.LRU, remote cache.Remote) *fiber.App {
	app := fiber.New()
	h := NewCacheHandler(func() *cache.LRU { return store }, remote)
	app.Get("/cache/stats", h.GetStats)
	app.Delete("/cache", h.Clear)
	app.Post("/cache/cleanup", h.Cleanup)
	app.Post("/cache/stats/reset", h.ResetStats)
	return app
}

func body(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestCacheHandler_GetStats(t *testing.T) {
	store := cache.NewLRU(10, time.Minute)
	store.Set("a", 1)
	store.Get("a")
	store.Get("missing")

	resp, err := setupApp(store, nil).Test(httptest.NewRequest("GET", "/cache/stats", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	got := body(t, resp)
	assert.Equal(t, float64(1), got["hits"])
	assert.Equal(t, float64(1), got["misses"])
	assert.Equal(t, "50.0%", got["hit_rate"])
	assert.Equal(t, float64(1), got["size"])
	assert.Equal(t, float64(10), got["max_size"])
}

func TestCacheHandler_Clear(t *testing.T) {
	t.Run("LocalOnly", func(t *testing.T) {
		store := cache.NewLRU(10, time.Minute)
		store.Set("a", 1)
		store.Set("b", 2)

		resp, err := setupApp(store, nil).Test(httptest.NewRequest("DELETE", "/cache", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]any{"cleared": float64(2), "remote_cleared": float64(0)}, body(t, resp))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("WithRemote", func(t *testing.T) {
		mr := miniredis.RunT(t)
		remote, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "")
		require.NoError(t, err)
		t.Cleanup(func() { _ = remote.Close() })
		require.NoError(t, remote.Set(context.Background(), "k", []byte("v"), time.Minute))

		resp, err := setupApp(cache.NewLRU(10, time.Minute), remote).Test(httptest.NewRequest("DELETE", "/cache", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), body(t, resp)["remote_cleared"])
	})

	t.Run("RemoteDown", func(t *testing.T) {
		mr := miniredis.RunT(t)
		remote, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "")
		require.NoError(t, err)
		t.Cleanup(func() { _ = remote.Close() })
		mr.Close()

		resp, err := setupApp(cache.NewLRU(10, time.Minute), remote).Test(httptest.NewRequest("DELETE", "/cache", nil), -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestCacheHandler_Cleanup(t *testing.T) {
	now := time.Now()
	store := cache.NewLRU(10, time.Minute, cache.WithClock(func() time.Time { return now }))
	store.SetWithTTL("short", 1, time.Second)
	store.Set("long", 2)
	now = now.Add(2 * time.Second)

	resp, err := setupApp(store, nil).Test(httptest.NewRequest("POST", "/cache/cleanup", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"removed": float64(1)}, body(t, resp))
	assert.Equal(t, 1, store.Len())
}

func TestCacheHandler_ResetStats(t *testing.T) {
	store := cache.NewLRU(10, time.Minute)
	store.Set("a", 1)
	store.Get("a")

	resp, err := setupApp(store, nil).Test(httptest.NewRequest("POST", "/cache/stats/reset", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	got := body(t, resp)
	assert.Equal(t, float64(0), got["hits"])
	assert.Equal(t, "0.0%", got["hit_rate"])
	assert.Equal(t, float64(1), got["size"])
}
