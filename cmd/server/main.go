package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ZTormDev/pos/internal/config"
	"github.com/ZTormDev/pos/internal/router"
	"github.com/ZTormDev/pos/internal/storage"
	"github.com/ZTormDev/pos/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	// Structured logger — dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	st, err := newStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open durable store")
	}
	defer st.Close()

	ledger, err := store.Open(context.Background(), st)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load ledger")
	}

	r, err := router.New(cfg, ledger, st)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("POS backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	// Final flush: drain pending snapshot writes before the process exits.
	if err := ledger.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("final ledger flush failed")
	}
	log.Info().Msg("server exited")
}

// newStore picks the durable backend: Redis by default, in-memory when
// REDIS_URL is set to "memory" (ephemeral, dev only).
func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.RedisURL == "memory" {
		log.Warn().Msg("using in-memory storage, state will not survive restarts")
		return storage.NewMemory(), nil
	}
	return storage.NewRedis(cfg.RedisURL)
}
