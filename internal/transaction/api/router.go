package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carmarket/internal/metrics"
	"carmarket/internal/transaction"
)

// InitRoutes registers all transaction endpoints on the given Gin engine.
func InitRoutes(e *gin.Engine, service *transaction.Service, logger *zap.Logger, rec metrics.Recorder) {
	h := NewTransactionHandler(service, logger)

	e.Use(metrics.Middleware(rec))

	e.POST("/transactions", h.handleCreate)
	e.GET("/transactions", h.handleList)
	e.GET("/transactions/:id", h.handleGet)
	e.DELETE("/transactions/:id", h.handleDelete)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
