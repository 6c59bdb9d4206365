// Package main provides the API server entry point for the challenge analyzer.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/adapter"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/api"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/config"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/logging"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/service"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.GetGlobalLogger().WithError(err).Fatal("Failed to load configuration")
	}

	logging.InitGlobalLogger(
		logging.ParseLogLevel(cfg.Logging.Level),
		logging.ParseLogFormat(cfg.Logging.Format),
	)
	logger := logging.GetGlobalLogger()
	logger.WithFields(map[string]interface{}{
		"level":  cfg.Logging.Level,
		"format": cfg.Logging.Format,
	}).Info("Challenge analyzer starting")

	var cache service.AnalysisCache
	if cfg.Cache.Enabled {
		redisCache, err := storage.NewRedisCache(&cfg.Cache.Redis)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisCache.Close()
		cache = storage.NewAnalysisCache(redisCache, cfg.Cache.TTL)
		logger.Info("Analysis cache enabled")
	}

	hiveClient := adapter.NewHiveClient(&cfg.Hive)
	hafahClient := adapter.NewHafahClient(&cfg.Hafah)

	scanner := service.NewPowerUpScanner(hafahClient, logger)
	classifier := service.NewParticipantClassifier(scanner, logger)
	analyzer := service.NewAnalyzer(hiveClient, classifier, cache, logger)

	server := api.NewServer(&api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    10 * time.Minute, // a full analysis can take a while
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}, analyzer)

	go func() {
		logger.WithFields(map[string]interface{}{
			"host": cfg.Server.Host,
			"port": cfg.Server.Port,
		}).Info("HTTP server listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	if err := server.Shutdown(context.Background()); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
	logger.Info("Server stopped")
}
