package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"carmarket/internal/config"
	"carmarket/internal/listing"
	"carmarket/internal/listing/api"
	"carmarket/internal/metrics"
	"carmarket/internal/postgres"
	"carmarket/internal/transaction"
)

func main() {
	cfg, err := config.Load("LISTING")
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var store listing.Storage
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			panic(fmt.Errorf("error connecting to database: %w", err))
		}
		defer pool.Close()
		store = listing.NewPostgresStorage(pool)
	} else {
		logger.Warn("no database configured, using in-memory storage")
		store = listing.NewMemoryStorage()
	}

	reg := prometheus.NewRegistry()
	rec := metrics.NewPrometheus("car_listing", reg)

	transactions := transaction.NewClient(cfg.TransactionURL, cfg.DispatchTimeout)
	service := listing.NewService(store, transactions, logger, rec).
		WithDispatchTimeout(cfg.DispatchTimeout)

	r := gin.Default()
	api.InitRoutes(r, service, logger, rec)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	logger.Info("car listing service starting", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
