package config

import (
	"errors"
	"os"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// devSessionSecret keys session-token MACs when SESSION_SECRET is
	// unset. Only tolerated in development; Load rejects it in production.
	devSessionSecret = "dev-secret-change-me"

	defaultSessionTTL = 7 * 24 * time.Hour
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	PostgresDSN   string
	SessionSecret string
	SessionTTL    time.Duration
	Env           string
}

var ErrSecretRequired = errors.New("config: SESSION_SECRET is required in production")

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		SessionSecret: getenv("SESSION_SECRET", ""),
		SessionTTL:    defaultSessionTTL,
		Env:           getenv("APP_ENV", EnvDevelopment),
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, err
		}
		cfg.SessionTTL = d
	}

	if cfg.SessionSecret == "" {
		if cfg.Env == EnvProduction {
			return nil, ErrSecretRequired
		}
		cfg.SessionSecret = devSessionSecret
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production cookie flags.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
