package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	delivery "chainscope/internal/adapter/delivery/http"
	handler "chainscope/internal/adapter/handler/http"
	"chainscope/internal/adapter/rpc"
	"chainscope/internal/adapter/storage/chainlist"
	"chainscope/internal/adapter/storage/memory"
	"chainscope/internal/application"
	"chainscope/internal/config"
	"chainscope/internal/logger"
)

func main() {
	// --- Configuration ---
	cfgPath := "configs"
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	// --- Logger ---
	zapLogger, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	zapLogger.Info("Logger initialized",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.Any("config", cfg.Logger))

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Dependency Injection (Manual) ---
	zapLogger.Info("Initializing dependencies...")

	chainRepo := chainlist.NewRepository(cfg.Chainlist, zapLogger)
	cacheRepo := memory.NewCacheRepository(*cfg, zapLogger)
	rpcChecker := rpc.NewChecker(cfg.Checker, zapLogger)

	chainService := application.NewChainService(rootCtx, chainRepo, cacheRepo, rpcChecker, zapLogger, *cfg)

	chainHandler := handler.NewChainHandler(chainService, zapLogger)

	// --- HTTP Router & Server ---
	r := delivery.NewRouter(chainHandler, zapLogger)
	server := &fasthttp.Server{
		Handler: delivery.LoggingMiddleware(zapLogger, r.Handler),
		Name:    cfg.App.Name,
	}

	serverAddr := ":" + cfg.Server.Port
	serverErr := make(chan error, 1)
	go func() {
		zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr))
		serverErr <- server.ListenAndServe(serverAddr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	case <-rootCtx.Done():
		zapLogger.Info("Shutdown signal received", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		zapLogger.Error("Server shutdown failed", zap.Error(err))
		return
	}
	zapLogger.Info("Server stopped")
}
