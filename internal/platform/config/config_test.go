// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinelist/internal/platform/config"
)

// setBaseEnv installs the minimum environment for a memory-backed server.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TMDB_API_KEY", "tmdb-key")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_DRIVER", "memory")
}

/*
TestLoad_Defaults verifies default values for a minimal environment.
*/
func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://abmoviess.netlify.app,http://localhost:3000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDBBaseURL)
	assert.Equal(t, "en-US", cfg.CatalogLanguage())
	assert.Equal(t, 10*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, []string{"https://abmoviess.netlify.app", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_Validation covers the cross-field rules.
*/
func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres_without_dsn", map[string]string{"STORE_DRIVER": "postgres"}},
		{"unknown_driver", map[string]string{"STORE_DRIVER": "mongo"}},
		{"no_verifier_key", map[string]string{"JWT_SECRET": ""}},
		{"bad_language", map[string]string{"TMDB_LANGUAGE": "not a tag!"}},
		{"smtp_without_recipient", map[string]string{"SMTP_HOST": "smtp.gmail.com"}},
		{"zero_rate", map[string]string{"RATE_LIMIT_RPS": "0"}},
		{"memory_in_production", map[string]string{"ENVIRONMENT": "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

/*
TestLoad_MissingAPIKey ensures required tags are enforced.
*/
func TestLoad_MissingAPIKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TMDB_API_KEY", "")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoad_BlankCORSOrigins drops empty entries so no wildcard is implied.
*/
func TestLoad_BlankCORSOrigins(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " , https://abmoviess.netlify.app ,")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://abmoviess.netlify.app"}, cfg.CORSAllowedOrigins)
}

/*
TestLoad_Production allows a postgres-backed production environment.
*/
func TestLoad_Production(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://cinelist@localhost:5432/cinelist")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}
