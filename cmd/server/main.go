package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/learnquest/internal/bootstrap"
	"anoa.com/learnquest/internal/config"
	"anoa.com/learnquest/internal/server"
	"anoa.com/learnquest/pkg/database"
	"anoa.com/learnquest/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logger.Log.Fatalw("failed to connect database", "error", err)
	}

	if cfg.ShouldAutoMigrate() {
		if err := bootstrap.Migrate(db); err != nil {
			logger.Log.Fatalw("migration failed", "error", err)
		}
		logger.Log.Info("✅ database schema migrated")
	} else {
		logger.Log.Info("auto migration disabled, expecting an up-to-date schema")
	}
	if err := bootstrap.SeedBadgeDefinitions(db); err != nil {
		logger.Log.Fatalw("failed to seed badge definitions", "error", err)
	}
	if cfg.IsDevelopment() && cfg.SeedDevelopmentData {
		if err := bootstrap.SeedActiveSeason(db, time.Now()); err != nil {
			logger.Log.Fatalw("failed to seed season", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		// Cache and rate limiting are optional.
		logger.Log.Warnw("redis unavailable, continuing without cache", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	srv, err := server.NewServer(cfg, db, redisClient)
	if err != nil {
		logger.Log.Fatalw("failed to build server", "error", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Log.Fatalw("server exited with error", "error", err)
		}
	case <-ctx.Done():
		logger.Log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorw("graceful shutdown failed", "error", err)
		}
	}
}
