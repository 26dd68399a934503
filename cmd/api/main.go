package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pokeshop/storefront/internal/api"
	"github.com/pokeshop/storefront/internal/infrastructure/config"
	mongodb "github.com/pokeshop/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/pokeshop/storefront/internal/infrastructure/db/redis"
	"github.com/pokeshop/storefront/internal/infrastructure/storage"
	"github.com/pokeshop/storefront/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	// Sessions created by earlier processes are invalidated against this
	// marker on first use.
	serverStart := time.Now().Unix()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("failed to ensure user indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	files, err := storage.NewDiskStore(cfg.UploadDir, "/uploads")
	if err != nil {
		logg.Fatal().Err(err).Msg("upload storage unavailable")
	}

	e := api.NewRouter(api.Deps{
		DB:          db,
		Redis:       rdb,
		Files:       files,
		Config:      cfg,
		ServerStart: serverStart,
		Log:         logg,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("http server failed")
		}
	}()
	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront api started")

	<-ctx.Done()
	logg.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown failed")
	}
}
