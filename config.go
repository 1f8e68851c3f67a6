// config.go
//
// Process configuration, read from the environment (and .env via godotenv).

package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/robalobadob/cosmic-word/internal/daily"
	"github.com/robalobadob/cosmic-word/internal/game"
	"github.com/robalobadob/cosmic-word/internal/words"
)

type config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	WordsFile   string `env:"WORDS_FILE"`
	WordsDB     string `env:"WORDS_DB"`
	WordsImport bool   `env:"WORDS_IMPORT"`

	SecretPicker string `env:"SECRET_PICKER" envDefault:"random"` // random | daily
	DailySalt    string `env:"DAILY_SALT" envDefault:"cosmic-word"`

	TokenSecret string        `env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	ClientOrigin   string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	DefaultMode    string        `env:"DEFAULT_MODE" envDefault:"quest"`
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
}

func loadConfig() (config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if _, ok := game.ModeByName(cfg.DefaultMode); !ok {
		return cfg, fmt.Errorf("DEFAULT_MODE: unknown mode %q", cfg.DefaultMode)
	}
	if cfg.SessionIdleTTL <= 0 {
		return cfg, fmt.Errorf("SESSION_IDLE_TTL must be positive, got %s", cfg.SessionIdleTTL)
	}
	return cfg, nil
}

func (c config) level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func (c config) source() words.Source {
	return words.Source{File: c.WordsFile, DB: c.WordsDB, Import: c.WordsImport}
}

func (c config) picker() (words.Picker, error) {
	switch c.SecretPicker {
	case "", "random":
		return words.CryptoPicker{}, nil
	case "daily":
		return daily.Picker{Salt: c.DailySalt}, nil
	default:
		return nil, fmt.Errorf("SECRET_PICKER: unknown picker %q", c.SecretPicker)
	}
}
