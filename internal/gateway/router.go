package gateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"carmarket/internal/config"
)

const requestIDKey = "request_id"

// requestLogger tags every request with a generated ID and logs its outcome.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := uuid.NewString()
		c.Set(requestIDKey, rid)
		start := time.Now()
		c.Next()

		logger.Info("request handled",
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// InitRoutes registers the gateway's proxy routes on the given Gin engine.
// Reads are open; mutations require the matching permission in the caller's
// token.
func InitRoutes(e *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	e.Use(requestLogger(logger))

	secret := []byte(cfg.JWTSecret)
	listings := newProxy(cfg.ListingURL, logger)
	transactions := newProxy(cfg.TransactionURL, logger)

	e.GET("/api/carlistings", listings.handle)
	e.GET("/api/carlistings/:id", listings.handle)
	e.POST("/api/carlistings", RequirePermission(secret, "create:carlisting"), listings.handle)
	e.PUT("/api/carlistings/:id", RequirePermission(secret, "update:carlisting"), listings.handle)
	e.DELETE("/api/carlistings/:id", RequirePermission(secret, "delete:carlisting"), listings.handle)

	e.GET("/api/transactions", transactions.handle)
	e.GET("/api/transactions/:id", transactions.handle)
	e.POST("/api/transactions", RequirePermission(secret, "create:transaction"), transactions.handle)
	e.DELETE("/api/transactions/:id", RequirePermission(secret, "delete:transaction"), transactions.handle)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
