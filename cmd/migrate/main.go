package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_listings/internal/adapters/observability"
	"hotel_listings/internal/shared"
	"hotel_listings/internal/storage/sqlstore"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, cfg.LogFile)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sqlstore.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := sqlstore.Migrate(ctx, db, cfg.DB.Driver); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Str("driver", cfg.DB.Driver).Msg("schema up to date")
}
