package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/config"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/repository"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/router"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/services"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Open the document store; sqlite runs its migrations here
	docRepo, closeRepo, err := repository.Open(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to open document store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeRepo()

	docService, err := services.NewService(context.Background(), docRepo, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize pipeline", "error", err)
	}

	// Setup HTTP router
	handler := router.NewRouter(docService, cfg.InputFolder, logger)

	// Batches run inside the request, so writes get a long timeout
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "driver", cfg.StoreDriver, "workers", cfg.Workers)
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
