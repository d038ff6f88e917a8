package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cultura-atlas/atlas-backend/internal/api"
	"github.com/cultura-atlas/atlas-backend/internal/config"
	"github.com/cultura-atlas/atlas-backend/internal/gemini"
	"github.com/cultura-atlas/atlas-backend/internal/logger"
	"github.com/cultura-atlas/atlas-backend/internal/qloo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Upstream clients are constructed once and passed by reference into the
	// handlers; there is no package-level client state.
	qlooClient := qloo.NewClient(cfg.QlooBaseURL, cfg.QlooAPIToken, &http.Client{Timeout: 30 * time.Second}, zlog)

	genClient, err := gemini.NewGenAIClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		zlog.Fatal("failed to create Gemini client", zap.Error(err))
	}
	defer genClient.Close()

	geminiService := gemini.NewService(genClient, zlog)

	apiHandler := api.NewAPIHandler(qlooClient, geminiService, zlog)
	router := api.NewRouter(apiHandler, zlog)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generation calls can take a while
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zlog.Info("starting server", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited gracefully")
}
