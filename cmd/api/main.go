package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_listings/internal/adapters/http_server"
	"hotel_listings/internal/adapters/localcache"
	"hotel_listings/internal/adapters/observability"
	redisad "hotel_listings/internal/adapters/redis"
	"hotel_listings/internal/app"
	"hotel_listings/internal/domain"
	"hotel_listings/internal/shared"
	"hotel_listings/internal/storage/images"
	"hotel_listings/internal/storage/sqlstore"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sqlstore.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("database connection failed")
	}
	defer db.Close()
	if err := sqlstore.Migrate(ctx, db, cfg.DB.Driver); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}
	log.Info().Str("driver", cfg.DB.Driver).Msg("database connection ok")

	// deps
	repo := sqlstore.New(db)
	store := images.New(cfg.Uploads.Dir, images.DefaultPrefix, cfg.Uploads.MaxBytes)
	cache, closeCache := openCache(ctx, cfg)
	defer closeCache()

	hotels := app.NewHotelService(repo, store, cache, cfg.Cache.TTL)
	rooms := app.NewRoomService(repo, store, cache, cfg.Cache.TTL)

	// http
	out := server.NewResponder(cfg.ResponseMode)
	srv := server.New(server.Options{CORSOrigin: cfg.CORSOrigin, Timeout: cfg.RequestTimeout, Out: out})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Hotels: hotels,
		Rooms:  rooms,
		Images: store,
		Out:    out,
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpSrv.Addr).Str("uploads", store.Dir()).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openCache picks the read cache backend. A nil cache disables caching.
func openCache(ctx context.Context, cfg shared.Config) (domain.Cache, func()) {
	switch cfg.Cache.Backend {
	case "redis":
		rc := redisad.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis not reachable; cache disabled")
			_ = rc.Close()
			return nil, func() {}
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis cache enabled")
		return rc, func() { _ = rc.Close() }
	case "memory":
		log.Info().Msg("in-process cache enabled")
		return localcache.New(cfg.Cache.TTL), func() {}
	default:
		return nil, func() {}
	}
}
