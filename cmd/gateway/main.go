package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carmarket/internal/config"
	"carmarket/internal/gateway"
)

func main() {
	cfg, err := config.Load("GATEWAY")
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Warn("GATEWAY_JWT_SECRET is empty, every token will be rejected")
	}

	r := gin.Default()
	gateway.InitRoutes(r, cfg, logger)

	logger.Info("gateway starting",
		zap.String("addr", cfg.Addr),
		zap.String("listing_url", cfg.ListingURL),
		zap.String("transaction_url", cfg.TransactionURL),
	)
	if err := r.Run(cfg.Addr); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
