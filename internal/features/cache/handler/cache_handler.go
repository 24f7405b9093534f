package handler

import (
	"trendkit/internal/core/cache"
	"trendkit/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CacheHandler exposes administration of the memoization cache.
type CacheHandler struct {
	store  func() *cache.LRU
	remote cache.Remote
}

// NewCacheHandler creates a CacheHandler. store is resolved on every request so a
// reconfigured default store is picked up. remote may be nil.
func NewCacheHandler(store func() *cache.LRU, remote cache.Remote) *CacheHandler {
	return &CacheHandler{
		store:  store,
		remote: remote,
	}
}

// ClearResponse is the body of DELETE /cache.
type ClearResponse struct {
	Cleared       int `json:"cleared"`
	RemoteCleared int `json:"remote_cleared"`
}

// CleanupResponse is the body of POST /cache/cleanup.
type CleanupResponse struct {
	Removed int `json:"removed"`
}

// GetStats godoc
// @Summary Get cache statistics
// @Tags cache
// @Produce json
// @Success 200 {object} cache.Stats
// @Router /cache/stats [get]
func (h *CacheHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(h.store().Stats())
}

// Clear godoc
// @Summary Clear the cache
// @Description Removes every entry from the local store and the shared tier
// @Tags cache
// @Produce json
// @Success 200 {object} ClearResponse
// @Failure 502 {object} map[string]string
// @Router /cache [delete]
func (h *CacheHandler) Clear(c *fiber.Ctx) error {
	resp := ClearResponse{Cleared: h.store().Clear()}

	if h.remote != nil {
		n, err := h.remote.Clear(c.UserContext())
		if err != nil {
			logger.Get().Error("Failed to clear remote cache", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "local cache cleared, remote cache unavailable",
			})
		}
		resp.RemoteCleared = n
	}

	logger.Get().Info("Cache cleared", zap.Int("cleared", resp.Cleared), zap.Int("remote_cleared", resp.RemoteCleared))
	return c.JSON(resp)
}

// Cleanup godoc
// @Summary Remove expired entries
// @Tags cache
// @Produce json
// @Success 200 {object} CleanupResponse
// @Router /cache/cleanup [post]
func (h *CacheHandler) Cleanup(c *fiber.Ctx) error {
	return c.JSON(CleanupResponse{Removed: h.store().CleanupExpired()})
}

// ResetStats godoc
// @Summary Reset hit and miss counters
// @Tags cache
// @Produce json
// @Success 200 {object} cache.Stats
// @Router /cache/stats/reset [post]
func (h *CacheHandler) ResetStats(c *fiber.Ctx) error {
	store := h.store()
	store.ResetStats()
	return c.JSON(store.Stats())
}
