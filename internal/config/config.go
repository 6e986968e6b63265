package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration, loaded from the environment.
type Config struct {
	Addr         string `env:"ADDR" envDefault:":8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/packgen.db"`

	// CardAPIBaseURL points at a Scryfall-compatible card API.
	CardAPIBaseURL string        `env:"CARD_API_BASE_URL" envDefault:"https://api.scryfall.com"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"168h"`

	// RetryCap overrides the engine's rejection-sampling bound; 0 keeps the
	// built-in default.
	RetryCap int `env:"RETRY_CAP"`

	// AdminSecretHash is the bcrypt hash of the shared admin secret. Leaving
	// it empty disables the admin surface.
	AdminSecretHash string        `env:"ADMIN_SECRET_HASH"`
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTIssuer       string        `env:"JWT_ISSUER" envDefault:"booster-pack-generator"`
	JWTTTL          time.Duration `env:"JWT_TTL" envDefault:"168h"`

	AppEnv                string   `env:"APP_ENV" envDefault:"development"`
	WSAllowedOrigins      []string `env:"WS_ALLOWED_ORIGINS" envSeparator:","`
	DevWebSocketsAllowAll bool     `env:"DEV_WS_ALLOW_ALL"`
}

// LoadFromEnv parses the environment and validates combinations that would
// only fail at request time.
func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AdminSecretHash != "" && cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required when ADMIN_SECRET_HASH is set")
	}
	if cfg.RetryCap < 0 {
		return Config{}, fmt.Errorf("RETRY_CAP must be non-negative")
	}
	return cfg, nil
}

// AdminEnabled reports whether the admin surface is configured.
func (c Config) AdminEnabled() bool {
	return c.AdminSecretHash != "" && c.JWTSecret != ""
}
