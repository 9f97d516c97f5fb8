// main is the entry point of the fivestat application.
// It initializes the configuration, logger, GeoIP provider, snapshot cache,
// sync engine, and starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/fivestat/internal/cache"
	"github.com/woozymasta/fivestat/internal/config"
	"github.com/woozymasta/fivestat/internal/discord"
	"github.com/woozymasta/fivestat/internal/enrich"
	"github.com/woozymasta/fivestat/internal/fivem"
	"github.com/woozymasta/fivestat/internal/geoip"
	"github.com/woozymasta/fivestat/internal/imageprobe"
	"github.com/woozymasta/fivestat/internal/logger"
	"github.com/woozymasta/fivestat/internal/server"
	"github.com/woozymasta/fivestat/internal/syncer"
)

func main() {
	cfg := config.Parse()

	logger.Setup(cfg.Logger)
	log.Info().Str("server_code", cfg.Upstream.ServerCode).Msg("Starting fivestat service...")

	// GeoIP for player country resolution, best-effort
	geoProvider := geoip.Setup(cfg.GeoIP)
	if geoProvider != nil {
		defer func() {
			if err := geoProvider.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing GeoIP provider")
			}
		}()
	}

	// Snapshot cache
	store, err := cache.New(cfg.Cache.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize snapshot cache")
	}
	defer store.Close()

	// Sync engine
	engine := syncer.New(
		fivem.New(cfg.Upstream),
		imageprobe.New(cfg.Sync.ProbeTimeout),
		store,
		syncer.Options{
			Interval:         cfg.Sync.Interval,
			FailureThreshold: cfg.Sync.FailureThreshold,
			ProbeTimeout:     cfg.Sync.ProbeTimeout,
		},
	)
	if err := engine.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start sync engine")
	}

	// Player enrichment
	var resolver enrich.CountryResolver
	if geoProvider != nil {
		resolver = geoProvider
	}
	enricher := enrich.New(discord.New(cfg.Lookup), resolver, cfg.Lookup.Concurrency)

	// Init server
	srvHandler := server.New(store, engine, enricher, cfg)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srvHandler.Run(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("Server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Shut down HTTP
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop the sync schedule, in-flight work is not awaited
	engine.Stop()

	log.Info().Msg("Server exited")
}
