package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

// insecureSecret is the development fallback signing key. It must never
// reach production.
const insecureSecret = "your-secret-key"

// Config holds the application configuration. It is populated once at
// startup and treated as read-only afterwards.
type Config struct {
	ServerPort     int      `env:"PORT" envDefault:"4000"`
	DatabasePath   string   `env:"DATABASE_PATH" envDefault:"./serverup.db"`
	JWTSecret      string   `env:"JWT_SECRET" envDefault:"your-secret-key"`
	AppEnv         string   `env:"APP_ENV" envDefault:"development"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = insecureSecret
	}
	if cfg.JWTSecret == insecureSecret {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET must be set when APP_ENV=production")
		}
		log.Warn().Msg("JWT_SECRET not set; using the insecure development fallback")
	}

	return cfg, nil
}

// IsProduction reports whether the process runs with a production profile.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
