package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/api"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/config"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/session"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/store"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/ui"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "development" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	db, err := store.NewDatabase(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open local storage")
	}

	creds := store.NewCredencialRepository(db)
	cache := store.NewCacheRepository(db)

	client := api.New(
		cfg.APIBaseURL,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second,
		creds,
		log.Logger,
	)
	sesion := session.NewManager(client, creds, cfg.RolPiloto, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shell := ui.New(sesion, client, cache, os.Stdin, os.Stdout, log.Logger)
	if err := shell.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("shell error")
	}
}
