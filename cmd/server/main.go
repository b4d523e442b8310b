package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"suedtirol/server/config"
	"suedtirol/server/internal/api"
	"suedtirol/server/internal/charts"
	"suedtirol/server/internal/database"
	"suedtirol/server/internal/dataset"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	gin.SetMode(cfg.Server.GinMode)

	// Snapshot database for offline fallback
	var store dataset.SnapshotStore
	if cfg.Snapshots.Enabled {
		logger.Infof("Using snapshot database at: %s", cfg.Snapshots.Path)
		db, err := database.NewDatabase(cfg.Snapshots.Path)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database")
		}
		defer db.Close()
		store = db
	}

	fetcher := dataset.NewHTTPFetcher(logger, cfg.FetchTimeout())
	loader := dataset.NewLoader(cfg, fetcher, store, logger)
	holder := dataset.NewHolder()

	logger.Info("Loading datasets...")
	// a dataset that failed only disables its own dashboard; the others
	// are served and /api/datasets/reload can retry later
	if catalog, err := holder.Reload(context.Background(), loader); err != nil {
		logger.WithError(err).Error("Failed to load datasets")
	} else if len(catalog.Errors) > 0 {
		logger.WithField("failed", len(catalog.Errors)).Warn("Serving with some datasets missing")
	}

	handler := api.NewHandler(holder, loader, charts.Options{
		Width:  cfg.Charts.Width,
		Height: cfg.Charts.Height,
	}, logger)
	router := api.NewRouter(handler, cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
}
