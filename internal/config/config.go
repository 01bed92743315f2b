package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the application configuration. Everything comes from the
// environment at process start; the JWT secret is the only required value.
type Config struct {
	ListenAddr    string        `env:"LISTEN_ADDR" envDefault:":5000" validate:"hostname_port"`
	MongoURI      string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017" validate:"required"`
	MongoDatabase string        `env:"MONGO_DB" envDefault:"postboard" validate:"required"`
	JWTSecret     string        `env:"JWT_SECRET" validate:"required,min=16"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// Load reads configuration from a .env file (if present) and the
// environment, then validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
