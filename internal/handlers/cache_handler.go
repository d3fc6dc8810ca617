package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClearCache handles DELETE /api/cache
// Removes every cached provider response.
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.cache.ClearAll(); err != nil {
		h.log.Error("clear cache failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared"})
}

// SweepCache handles POST /api/cache/sweep
// Removes expired entries only.
func (h *Handler) SweepCache(c *gin.Context) {
	if err := h.cache.ClearExpired(); err != nil {
		h.log.Error("sweep cache failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear expired entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expired entries cleared"})
}

// DeleteCacheEntry handles DELETE /api/cache/entries/*key
func (h *Handler) DeleteCacheEntry(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cache key is required"})
		return
	}
	if err := h.cache.Delete(key); err != nil {
		h.log.Error("delete cache entry failed", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cache entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cache entry deleted", "key": key})
}
