package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"profitcalc/internal/category"
	"profitcalc/internal/config"
	"profitcalc/internal/rates"
	"profitcalc/internal/server"
	"profitcalc/internal/shipping"
	"profitcalc/pkg/api"
	"profitcalc/pkg/logger"
	"profitcalc/pkg/redis"
)

// ENTRY POINT

func main() {
	zapLogger, err := logger.New()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load config", zap.Error(err))
	}

	redisClient := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RateTTL)
	defer redisClient.Close()

	rateClient := api.NewClient(cfg.RateURL, &http.Client{Timeout: cfg.HTTPRequestTimeout}, zapLogger)
	rateProvider := rates.NewProvider(rateClient, redisClient, cfg.RateCurrency, cfg.RateSpread, cfg.RateTTL, zapLogger)

	shippingTable, err := shipping.Load(cfg.ShippingTablePath)
	if err != nil {
		zapLogger.Fatal("Failed to load shipping table", zap.Error(err))
	}

	categoryTable, err := category.Load(cfg.CategoryTablePath)
	if err != nil {
		zapLogger.Fatal("Failed to load category table", zap.Error(err))
	}

	srv := server.New(rateProvider, shippingTable, categoryTable, cfg.FeeSchedule(), zapLogger)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Router(),
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	go func() {
		zapLogger.Info("Starting HTTP server", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server stopped with error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("Server shutdown gracefully")
}
