// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, catalog) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// Supported favorites storage backends.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the Cinelist API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"PORT"         envDefault:"5000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the user store: "postgres" or "memory" (local runs only).
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// MemorySeedUsers lists user IDs created empty by the memory store.
	MemorySeedUsers []string `env:"MEMORY_SEED_USERS" envSeparator:","`

	// Key-Value Cache (Redis). Empty disables the catalog cache.
	RedisURL        string        `env:"REDIS_URL"`
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"10m"`

	// Token verification: a shared HS256 secret or an RS256 public key.
	JWTSecret     string `env:"JWT_SECRET"`
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH"`
	JWTIssuer     string `env:"JWT_ISSUER"`

	// Movie catalog (TMDB)
	TMDBAPIKey   string `env:"TMDB_API_KEY,required,notEmpty"`
	TMDBBaseURL  string `env:"TMDB_BASE_URL"  envDefault:"https://api.themoviedb.org/3"`
	TMDBLanguage string `env:"TMDB_LANGUAGE"  envDefault:"en-US"`

	// Cross-Origin Resource Sharing
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Contact form delivery (SMTP). Empty host logs messages instead of sending.
	SMTPHost         string `env:"SMTP_HOST"`
	SMTPPort         int    `env:"SMTP_PORT"          envDefault:"587"`
	SMTPUser         string `env:"EMAIL_USER"`
	SMTPPassword     string `env:"EMAIL_PASS"`
	ContactRecipient string `env:"CONTACT_RECIPIENT"`

	// Per-IP rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// catalogLanguage is the parsed form of TMDBLanguage.
	catalogLanguage language.Tag
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates
// cross-field requirements.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate checks rules that struct tags cannot express.
func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	case StoreDriverMemory:
		if c.IsProduction() {
			return errors.New("STORE_DRIVER=memory is not allowed in production")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	if c.JWTSecret == "" && c.JWTPubKeyPath == "" {
		return errors.New("one of JWT_SECRET or JWT_PUBLIC_KEY_PATH is required")
	}

	tag, err := language.Parse(c.TMDBLanguage)
	if err != nil {
		return fmt.Errorf("invalid TMDB_LANGUAGE %q: %w", c.TMDBLanguage, err)
	}
	c.catalogLanguage = tag

	if c.SMTPHost != "" && c.ContactRecipient == "" {
		return errors.New("CONTACT_RECIPIENT is required when SMTP_HOST is set")
	}

	for index, origin := range c.CORSAllowedOrigins {
		c.CORSAllowedOrigins[index] = strings.TrimSpace(origin)
	}
	c.CORSAllowedOrigins = slices.DeleteFunc(c.CORSAllowedOrigins, func(origin string) bool { return origin == "" })

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return nil
}

// CatalogLanguage returns the canonical BCP 47 tag sent to the catalog.
func (c *Config) CatalogLanguage() string {
	return c.catalogLanguage.String()
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
