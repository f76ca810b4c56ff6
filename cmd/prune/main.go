package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"hotel_listings/internal/adapters/observability"
	"hotel_listings/internal/app"
	"hotel_listings/internal/shared"
	"hotel_listings/internal/storage/images"
	"hotel_listings/internal/storage/sqlstore"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report orphaned images without removing them")
	flag.Parse()
	os.Exit(run(*dryRun))
}

// run returns the process exit code so deferred cleanup happens before exit.
func run(dryRun bool) int {
	cfg, err := shared.Load()
	if err != nil {
		log.Error().Err(err).Msg("config load failed")
		return 1
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("dir", cfg.Uploads.Dir).
		Int("workers", cfg.Prune.Workers).
		Float64("rate", cfg.Prune.Rate).
		Dur("grace", cfg.Prune.Grace).
		Bool("dry_run", dryRun).
		Msg("prune starting")

	db, err := sqlstore.Open(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return 1
	}
	defer db.Close()

	store := images.New(cfg.Uploads.Dir, images.DefaultPrefix, cfg.Uploads.MaxBytes)
	svc := app.NewPruneService(sqlstore.New(db), store, cfg.Prune.Workers, cfg.Prune.Rate, cfg.Prune.Grace)

	rep, err := svc.Prune(ctx, dryRun)
	if err != nil {
		log.Error().Err(err).Msg("prune aborted")
	}
	_ = json.NewEncoder(os.Stdout).Encode(rep)
	log.Info().
		Int("scanned", rep.Scanned).
		Int("orphans", rep.Orphans).
		Int("removed", rep.Removed).
		Int("failed", rep.Failed).
		Msg("prune completed")
	if err != nil || rep.Failed > 0 {
		return 1
	}
	return 0
}
