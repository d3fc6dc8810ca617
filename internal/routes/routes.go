package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"profile-roast/internal/auth"
	"profile-roast/internal/handlers"
	"profile-roast/internal/middleware"
)

func SetupRoutes(h *handlers.Handler, tokens *auth.Manager, gatherer prometheus.Gatherer) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for browser clients)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "profile-roast is running",
		})
	})

	ginRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Protected routes (authentication required)
	api := ginRouter.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(tokens))
	{
		api.GET("/profiles/:username/analysis", h.AnalyzeProfile)

		api.DELETE("/cache", h.ClearCache)
		api.POST("/cache/sweep", h.SweepCache)
		api.DELETE("/cache/entries/*key", h.DeleteCacheEntry)

		api.GET("/ws", h.Events)
	}

	return ginRouter
}
