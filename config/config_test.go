package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production") // skip .env lookup
	for _, key := range []string{"SERVER_PORT", "DATABASE_DIRECTORY", "DATABASE_FILE", "DB_MAX_OPEN_CONNS",
		"DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME_MINUTES", "SCHEMA_FILE", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.ServerPort)
	assert.Equal(t, "data/missions.db", cfg.DatabasePath())
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 600, cfg.RateLimitPerMinute)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "2")
	t.Setenv("DB_MAX_IDLE_CONNS", "8")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 2, cfg.MaxOpenConns)
	assert.Equal(t, 2, cfg.MaxIdleConns, "idle connections are clamped to the pool size")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
}

func TestGetEnvIntFallsBackOnBadValues(t *testing.T) {
	t.Setenv("POOL_TEST", "abc")
	assert.Equal(t, 7, getEnvInt("POOL_TEST", 7, 1))

	t.Setenv("POOL_TEST", "0")
	assert.Equal(t, 7, getEnvInt("POOL_TEST", 7, 1))

	t.Setenv("POOL_TEST", "3")
	assert.Equal(t, 3, getEnvInt("POOL_TEST", 7, 1))
}
