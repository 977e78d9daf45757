package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/do"
	"github.com/serroba/urlkurz/internal/container"
	"github.com/serroba/urlkurz/internal/messaging"
	"github.com/serroba/urlkurz/internal/metrics"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	var opts container.ConsumerOptions
	if err := envconfig.Process("", &opts); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	injector := do.New()
	container.ConsumerPackages(injector, &opts)

	logger := do.MustInvoke[*zap.Logger](injector)
	group := do.MustInvoke[*messaging.ConsumerGroup](injector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := group.Start(ctx); err != nil {
		logger.Fatal("failed to start consumer group", zap.Error(err))
	}

	metricsServer := &http.Server{
		Addr:              opts.MetricsAddr,
		Handler:           do.MustInvoke[*metrics.Metrics](injector).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	logger.Info("consumer running",
		zap.String("redis", opts.RedisAddr),
		zap.String("group", opts.ConsumerGroup),
		zap.String("metrics_addr", opts.MetricsAddr),
	)

	<-ctx.Done()

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", zap.Error(err))
	}

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
	_ = logger.Sync()
}
