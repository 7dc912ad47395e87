package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.POST("/estimate", handler.EstimateValuation)
	router.GET("/health", handler.HealthCheck)
	router.GET("/models", handler.GetModels)
	router.GET("/valuations/recent", handler.GetRecentValuations)
	router.GET("/stats", handler.GetValuationStats)
}

// RecoveryMiddleware converts any panic during request handling into a
// generic 500 without leaking internal detail
func RecoveryMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		logger.WithField("panic", recovered).Error("Unhandled error in request")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
