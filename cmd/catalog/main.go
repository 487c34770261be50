package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/user/sevenxhub-go/internal/catalog"
	"github.com/user/sevenxhub-go/internal/config"
	"github.com/user/sevenxhub-go/internal/favorites"
	"github.com/user/sevenxhub-go/internal/gateway"
	"github.com/user/sevenxhub-go/internal/server"
)

const (
	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout = 30 * time.Second
)

func main() {
	// Structured JSON logging to stdout
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	// Favorites store (durable local key-value set of file codes)
	favStore, err := favorites.Open(cfg.Favorites.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open favorites store")
	}
	log.Info().Int("count", favStore.Count()).Msg("Favorites store opened")

	// Upstream gateway and catalog service
	gw := gateway.NewClient(&cfg.API)
	svc := catalog.NewService(gw, &cfg.Catalog)
	browser := catalog.NewBrowser(svc)
	log.Info().
		Str("base_url", cfg.API.BaseURL).
		Bool("demo_fallback", cfg.Catalog.DemoFallback).
		Msg("Catalog service initialized")

	httpServer := server.NewServer(browser, svc, favStore, &cfg.API)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpServer.Start(cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	log.Info().Msg("SevenXHub catalog service started")

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	log.Info().Msg("Starting graceful shutdown...")

	if err := httpServer.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	} else {
		log.Info().Msg("HTTP server stopped")
	}

	if err := favStore.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing favorites store")
	} else {
		log.Info().Msg("Favorites store closed")
	}

	log.Info().Msg("Graceful shutdown completed")
}
