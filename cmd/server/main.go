package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unknowncanwrite/ship/internal/checklist"
	"github.com/unknowncanwrite/ship/internal/config"
	"github.com/unknowncanwrite/ship/internal/database"
	"github.com/unknowncanwrite/ship/internal/shipment/router"
	"github.com/unknowncanwrite/ship/internal/shipment/service"
	"github.com/unknowncanwrite/ship/internal/uploads"
)

func main() {
	// Load configuration from environment variables (and .env, when present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	slog.Info("configuration loaded successfully",
		"db_driver", cfg.Database.Driver,
		"db_host", cfg.Database.Host,
		"db_name", cfg.Database.Name,
		"storage_type", cfg.Storage.Type,
	)
	slog.Info("CORS configuration",
		"allowed_origins", cfg.CORS.AllowedOrigins,
		"allowed_methods", cfg.CORS.AllowedMethods,
		"allow_credentials", cfg.CORS.AllowCredentials,
	)

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if err := database.HealthCheck(db); err != nil {
		log.Fatalf("database health check failed: %v", err)
	}
	if err := database.Migrate(db, service.Models()...); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	directory := checklist.DefaultDirectory()
	if cfg.Catalog.DirectoryFile != "" {
		directory, err = checklist.LoadDirectory(cfg.Catalog.DirectoryFile)
		if err != nil {
			log.Fatalf("failed to load catalog directory: %v", err)
		}
		slog.Info("catalog directory loaded", "file", cfg.Catalog.DirectoryFile)
	}
	catalog := checklist.NewCatalog(directory)

	ctx := context.Background()
	driver, err := uploads.NewStorageFromConfig(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
	files := uploads.NewUploadService(driver)

	shipments := service.NewShipmentService(db)

	gin.SetMode(cfg.Server.Mode)
	engine := router.New(router.Dependencies{
		Shipments:      shipments,
		Progress:       service.NewProgressService(shipments, catalog),
		Documents:      service.NewDocumentService(shipments, files),
		Contacts:       service.NewContactService(db),
		Notes:          service.NewNoteService(db),
		Files:          files,
		CORS:           &cfg.CORS,
		MaxUploadBytes: int64(cfg.Server.MaxUploadSizeMB) << 20,
		HealthCheck:    func() error { return database.HealthCheck(db) },
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	} else {
		slog.Info("server gracefully stopped")
	}
}
