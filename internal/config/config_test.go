package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "REDIS_ADDR", "KAFKA_BROKER", "CACHE_TTL", "RATE_LIMIT_RPS", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.HTTP.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, float64(5), cfg.RateLimit.RPS)
	assert.False(t, cfg.OutboxEnabled())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8000")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("CACHE_TTL", "30")
	t.Setenv("HTTP_READ_TIMEOUT", "2s")
	t.Setenv("KAFKA_BROKER", "localhost:9092")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://localhost:5173 , ,https://hr.example.com")

	cfg := Load()

	assert.Equal(t, "8000", cfg.HTTP.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.True(t, cfg.OutboxEnabled())
	assert.Equal(t, []string{"http://localhost:5173", "https://hr.example.com"}, cfg.CORS.AllowedOrigins)
}
