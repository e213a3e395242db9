// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookmarks/internal/platform/config"
)

/*
TestParse_Defaults verifies the defaults when only the database is configured.
*/
func TestParse_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/bookmarks")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.SessionStorePostgres, cfg.SessionStore)
	assert.Equal(t, time.Hour, cfg.SessionReapInterval)
	assert.False(t, cfg.SkipPasswordCheck)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.AllowedOrigins())
}

/*
TestParse_Overrides verifies list and duration parsing.
*/
func TestParse_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/bookmarks")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SESSION_REAP_INTERVAL", "0s")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, config.SessionStoreRedis, cfg.SessionStore)
	assert.Zero(t, cfg.SessionReapInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

/*
TestParse_Invalid covers missing and inconsistent settings.
*/
func TestParse_Invalid(t *testing.T) {
	t.Run("missing_database", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := config.Parse()
		assert.Error(t, err)
	})

	t.Run("redis_without_url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/bookmarks")
		t.Setenv("SESSION_STORE", "redis")
		t.Setenv("REDIS_URL", "")
		_, err := config.Parse()
		assert.ErrorContains(t, err, "REDIS_URL")
	})

	t.Run("unknown_store", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/bookmarks")
		t.Setenv("SESSION_STORE", "memcached")
		_, err := config.Parse()
		assert.ErrorContains(t, err, "memcached")
	})
}
