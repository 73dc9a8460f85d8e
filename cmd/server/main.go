// @title DevEvent API
// @version 1.0
// @description Event listing service: browse events by slug and create events with an uploaded image.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devevent/config"
	_ "devevent/docs"
	"devevent/internal/adapters/imagestore"
	"devevent/internal/database"
	deliveryhttp "devevent/internal/delivery/http"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/repository/postgres"
	"devevent/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg)

	ctx := context.Background()

	connector := database.NewConnector(database.Config{
		URL:             cfg.DB.URL,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	defer func() {
		if err := connector.Close(); err != nil {
			logger.Error("close database", "err", err)
		}
	}()
	if cfg.DB.URL == "" {
		logger.Warn("DATABASE_URL is not set; event reads and writes will fail until it is configured")
	}

	store, err := imagestore.New(ctx, imagestore.Config{
		Provider:  cfg.ImageStore.Provider,
		PublicURL: cfg.ImageStore.PublicURL,
		LocalDir:  cfg.ImageStore.LocalDir,
		S3: imagestore.S3Config{
			Bucket:          cfg.ImageStore.S3Bucket,
			Region:          cfg.ImageStore.S3Region,
			Endpoint:        cfg.ImageStore.S3Endpoint,
			UsePathStyle:    cfg.ImageStore.S3UsePathStyle,
			AccessKeyID:     cfg.ImageStore.AccessKeyID,
			SecretAccessKey: cfg.ImageStore.SecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("image store", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(connector)
	eventService := services.NewEventService(eventRepo, store, cfg.ImageStore.Folder, logger, cfg.RequestTimeout)
	eventController := controllers.NewEventController(logger, eventService, cfg.MaxUploadBytes)

	routerCfg := deliveryhttp.RouterConfig{AllowedOrigins: cfg.AllowedOrigins}
	if local, ok := store.(*imagestore.LocalStore); ok {
		routerCfg.UploadsDir = local.Dir()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           deliveryhttp.NewRouter(logger, routerCfg, eventController),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "image_store", cfg.ImageStore.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		return
	}
	logger.Info("server stopped")
}
