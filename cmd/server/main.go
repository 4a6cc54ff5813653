package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/exam-helper-api/internal/completion"
	"github.com/BerylCAtieno/exam-helper-api/internal/config"
	"github.com/BerylCAtieno/exam-helper-api/internal/router"
	"github.com/BerylCAtieno/exam-helper-api/internal/services"
	"github.com/BerylCAtieno/exam-helper-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Initialize upstream completer
	completer, err := completion.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Gemini client", "error", err)
	}
	if closer, ok := completer.(io.Closer); ok {
		defer closer.Close()
	}

	completionService := services.NewService(completer, logger)

	// Setup HTTP router
	handler := router.NewRouter(completionService, cfg, logger)

	// Create HTTP server. Writes may wait on the upstream call.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"model", cfg.GeminiModel,
			"transport", cfg.GeminiTransport)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
