package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"profile-roast/internal/analyzer"
	"profile-roast/internal/middleware"
	"profile-roast/internal/xapi"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

// AnalyzeProfile handles GET /api/profiles/:username/analysis
// Fetches the profile (through the cache) and returns the commentary.
func (h *Handler) AnalyzeProfile(c *gin.Context) {
	username := c.Param("username")
	if !usernamePattern.MatchString(username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username"})
		return
	}

	result, err := h.runner.Run(c.Request.Context(), c.GetString(middleware.SubjectKey), username)
	if err != nil {
		h.log.Error("analysis failed", zap.String("username", username), zap.Error(err))
		switch {
		case errors.Is(err, analyzer.ErrNoUserID):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		case errors.Is(err, xapi.ErrProvider), errors.Is(err, xapi.ErrDecode):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch profile"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze profile"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
