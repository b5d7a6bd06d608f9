package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/api"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/auth"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/infrastructure/config"
	mongostore "github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/infrastructure/db/mongo"
	redisstore "github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/infrastructure/db/redis"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Eagle Bank API
// @version      1.0
// @description  Stateless authentication and user profile API.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// The signing key and TTL are validated here, once. A bad key never makes
	// it to request handling.
	codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid signing key configuration")
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	client, db, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongostore.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure mongodb indexes")
	}

	rdb, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer rdb.Close()

	e := api.NewRouter(db, rdb, codec, hasher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
