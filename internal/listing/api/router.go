package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carmarket/internal/listing"
	"carmarket/internal/metrics"
)

// InitRoutes registers all listing endpoints on the given Gin engine.
func InitRoutes(e *gin.Engine, service *listing.Service, logger *zap.Logger, rec metrics.Recorder) {
	h := NewListingHandler(service, logger)

	e.Use(metrics.Middleware(rec))

	e.POST("/carlistings", h.handleCreate)
	e.GET("/carlistings", h.handleList)
	e.GET("/carlistings/:id", h.handleGet)
	e.PUT("/carlistings/:id", h.handleUpdate)
	e.DELETE("/carlistings/:id", h.handleDelete)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
