package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamdexbot/Scoreboard-Pro/go/clients/supabase_client"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/auth"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	shutdownTimeout = 10 * time.Second
	supabaseTimeout = 10 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	cfg.applyEnv()
	setupLogging(cfg)
	if err := cfg.validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var client *supabase_client.SupabaseClient
	if cfg.authEnabled() {
		client = supabase_client.NewSupabaseClient(cfg.Supabase.URL, cfg.Supabase.AnonKey)
		client.SetTimeout(supabaseTimeout)
	}
	session := auth.NewSession()

	backend, err := setupStore(ctx, cfg, client, session)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to set up store")
	}
	defer backend.Close()

	publisher, err := setupPublisher(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up events publisher")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close events publisher")
		}
	}()

	s := store.New(backend, store.WithFailureHook(store.LogFailure))
	services := setupServices(ctx, cfg, s, backend.Profiles, client, session, publisher)
	srv := setupServer(cfg, services)

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("store", cfg.Store.Backend).
			Str("events", cfg.Events.Publisher).
			Bool("auth", services.AuthRequired).
			Msg("scoreboard server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// keep the time the clocks reached
	services.State.Lock()
	services.Scoreboard.Stop(shutdownCtx)
	services.State.Unlock()
}

func setupLogging(cfg *Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Log.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
