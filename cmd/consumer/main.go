package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/container"
	"github.com/serroba/url-shortener/internal/messaging"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	opts := &container.Options{
		DatabaseURL: os.Getenv("SERVICE_DATABASE_URL"),
		RedisAddr:   getEnv("SERVICE_REDIS_ADDR", "localhost:6379"),
		ClickSink:   container.ClickSinkStream,
		LogFormat:   getEnv("SERVICE_LOG_FORMAT", "console"),
	}

	injector := do.New()
	container.RegisterConsumer(injector, opts)

	logger := do.MustInvoke[*zap.Logger](injector)

	if err := opts.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	group, err := do.Invoke[*messaging.ConsumerGroup](injector)
	if err != nil {
		logger.Fatal("failed to initialize consumers", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())

	if err := group.Start(ctx); err != nil {
		logger.Fatal("failed to start consumer group", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	cancel()

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return defaultValue
}
