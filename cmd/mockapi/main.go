package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/adoption-client/internal/api/http"
	"github.com/spec-kit/adoption-client/internal/config"
	"github.com/spec-kit/adoption-client/internal/observability"
	"github.com/spec-kit/adoption-client/internal/worker"
)

const purgeInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing := observability.SetupTracing(ctx, cfg.App.Name+"-mock", cfg.Telemetry, logger)
	defer func() { _ = shutdownTracing(context.Background()) }()

	srv, err := httptransport.NewServer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build mock api", zap.Error(err))
	}
	janitorDone := worker.StartTokenJanitor(ctx, srv.Auth, purgeInterval, logger)

	go func() {
		logger.Info("mock api listening", zap.String("addr", cfg.Mock.Addr()))
		if err := srv.App.Listen(cfg.Mock.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	<-janitorDone
	_ = srv.App.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
