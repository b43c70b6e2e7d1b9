// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freshcart/freshcart-backend/internal/cache"
	"github.com/freshcart/freshcart-backend/internal/config"
	"github.com/freshcart/freshcart-backend/internal/database"
	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	setupLogging(cfg)

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Initialize database
	client, db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(client, cfg.Database)

	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeoutDuration())
	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		cancel()
		logrus.WithError(err).Fatal("Failed to create indexes")
	}
	cancel()

	listings := setupListingCache(cfg)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	server, err := router.Initialize(db, listings, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize router")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      server.Engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}
	server.Shutdown()

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// setupListingCache falls back to no caching when Redis is absent or unreachable.
func setupListingCache(cfg *config.Config) cache.ListingCache {
	if cfg.Redis.URL == "" {
		return cache.NoopListingCache{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		logrus.WithError(err).Warn("Redis unavailable, listing cache disabled")
		return cache.NoopListingCache{}
	}

	return cache.NewRedisListingCache(client, time.Duration(cfg.Redis.ListingCacheTTL)*time.Second)
}
