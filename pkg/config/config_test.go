package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, 15*time.Minute, cfg.CartCacheTTL)
	assert.False(t, cfg.TLSEnabled)
}

func TestLoadForService_Overrides(t *testing.T) {
	t.Setenv("notifier_HTTP_PORT", "9090")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("CART_CACHE_TTL", "60")
	t.Setenv("TLS_ENABLED", "true")

	cfg := LoadForService("notifier")

	assert.Equal(t, "notifier", cfg.ServiceName)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, time.Minute, cfg.CartCacheTTL)
	assert.True(t, cfg.TLSEnabled)

	dbCfg := cfg.Database()
	assert.Equal(t, "shop", dbCfg.DBName)
	assert.Equal(t, cfg.DBTimeout, dbCfg.Timeout)
}

func TestGetEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("HTTP_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}
