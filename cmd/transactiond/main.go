package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"carmarket/internal/config"
	"carmarket/internal/metrics"
	"carmarket/internal/postgres"
	"carmarket/internal/transaction"
	"carmarket/internal/transaction/api"
)

func main() {
	cfg, err := config.Load("TRANSACTION")
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var store transaction.Storage
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			panic(fmt.Errorf("error connecting to database: %w", err))
		}
		defer pool.Close()
		store = transaction.NewPostgresStorage(pool)
	} else {
		logger.Warn("no database configured, using in-memory storage")
		store = transaction.NewMemoryStorage()
	}

	reg := prometheus.NewRegistry()
	rec := metrics.NewPrometheus("transaction", reg)

	service := transaction.NewService(store, logger)

	r := gin.Default()
	api.InitRoutes(r, service, logger, rec)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	logger.Info("transaction service starting", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
