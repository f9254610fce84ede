// Package config loads service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the service.
type Config struct {
	APIHost string `env:"API_HOST" envDefault:"0.0.0.0"`
	APIPort int    `env:"API_PORT" envDefault:"8000"`

	DatabasePath string `env:"DATABASE_PATH" envDefault:"extractions.db"`

	// CORSOrigins is a comma-separated allowlist; "*" allows all.
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	// DefaultColumnHeightMM is the visualization height used when a
	// request does not supply one.
	DefaultColumnHeightMM float64 `env:"DEFAULT_COLUMN_HEIGHT_MM" envDefault:"3000"`

	// DefaultExposure is the ACI exposure condition assumed when a
	// validation request does not name one.
	DefaultExposure string `env:"DEFAULT_EXPOSURE" envDefault:"interior_beams_columns"`
}

// Load reads configuration from the environment. A missing .env file
// is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ListenAddr returns the host:port pair for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}

// CORSOriginList splits the configured origins.
func (c Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
