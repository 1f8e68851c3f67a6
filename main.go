package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cosmic-word/internal/httpserver"
	"github.com/robalobadob/cosmic-word/internal/store"
	"github.com/robalobadob/cosmic-word/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := cfg.source()
	entries, err := words.Load(ctx, src)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	picker, err := cfg.picker()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	dict := words.New(entries, words.WithPicker(picker))
	log.Info().Str("source", src.Describe()).Int("entries", dict.Len()).Str("picker", cfg.SecretPicker).Msg("dictionary ready")

	srv := httpserver.New(httpserver.Config{
		Dict:         dict,
		Store:        store.NewMemoryStore(),
		TokenSecret:  []byte(cfg.TokenSecret),
		TokenTTL:     cfg.TokenTTL,
		ClientOrigin: cfg.ClientOrigin,
		DefaultMode:  cfg.DefaultMode,
	})
	if cfg.TokenSecret == "" {
		log.Warn().Msg("TOKEN_SECRET not set, using development key")
	}

	go srv.RunSweeper(ctx, cfg.SessionIdleTTL, time.Minute)

	log.Info().Str("port", cfg.Port).Msg("starting cosmic-word server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
