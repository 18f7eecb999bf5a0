package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		signals := v1.Group("/signals")
		{
			signals.POST("", handler.Ingest)           // POST /api/v1/signals
			signals.POST("/batch", handler.IngestBatch) // POST /api/v1/signals/batch
			signals.GET("/known", handler.Known)       // GET  /api/v1/signals/known?link=...
		}

		v1.GET("/analytics", handler.ListAnalytics)       // GET /api/v1/analytics
		v1.GET("/analytics/:query", handler.Analytics)    // GET /api/v1/analytics/:query
		v1.GET("/stats", handler.Stats)                   // GET /api/v1/stats
	}
}
