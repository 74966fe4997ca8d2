package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"campusforms/internal/auth"
	"campusforms/internal/config"
	"campusforms/internal/database"
	"campusforms/internal/handlers"
	"campusforms/internal/logger"
	"campusforms/internal/server"
	"campusforms/internal/store"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Output: os.Stdout})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	db := client.Database(cfg.DBName)
	log.Info().Str("db", db.Name()).Msg("MongoDB connected")

	if err := database.EnsureIndexes(db); err != nil {
		log.Warn().Err(err).Msg("index bootstrap incomplete")
	}

	var tokens *auth.Tokens
	if cfg.TokensEnabled() {
		tokens = auth.NewTokens(cfg.JWTSecret, cfg.AccessTokenTTL)
	}

	engine := server.NewEngine(cfg, handlers.Deps{
		Contacts:          store.NewContacts(db),
		Students:          store.NewStudents(db),
		Users:             store.NewUsers(db),
		Admins:            store.NewAdmins(db),
		Products:          store.NewProducts(db),
		DB:                database.Pinger{Client: client},
		Tokens:            tokens,
		RequireAdminToken: cfg.RequireAdminToken,
		MaxImageBytes:     cfg.MaxUploadBytes,
	})

	if err := server.Run(ctx, engine, cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
