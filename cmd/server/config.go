package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/utn-progav/autos-api/internal/config"
	"github.com/utn-progav/autos-api/internal/service/auth"
)

// envFile is read before configuration loading when present. Variables
// already set in the environment are not overridden.
const envFile = ".env"

// loadAppConfig loads the application configuration from the environment,
// an optional .env file and an optional config.yaml.
func loadAppConfig() (*config.Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// ensureJWTSecret fills in an ephemeral signing secret when none is
// configured. Tokens issued with it do not survive a restart.
func ensureJWTSecret(cfg *config.Config, logger *slog.Logger) error {
	if cfg.Auth.JWTSecret != "" {
		return nil
	}
	secret, err := auth.GenerateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	cfg.Auth.JWTSecret = secret
	logger.Warn("no JWT secret configured, using an ephemeral one",
		slog.String("env", config.EnvPrefix+"_AUTH_JWT_SECRET"))
	return nil
}
