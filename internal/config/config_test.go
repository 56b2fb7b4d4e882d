package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("WITHDRAW_PER_HOUR", "")
	t.Setenv("WITHDRAW_BURST", "abc")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("LEDGER_BACKEND", "")

	cfg := LoadConfig()
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, 5, cfg.WithdrawPerHour)
	require.Equal(t, 3, cfg.WithdrawBurst)
	require.Equal(t, time.Minute, cfg.CacheTTL)
	require.Equal(t, "mysql", cfg.LedgerBackend)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_USER", "reels")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "monetization")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("IS_PROD", "true")
	t.Setenv("CATALOG_PATH", "/etc/reels/catalog.yaml")
	t.Setenv("WITHDRAW_PER_HOUR", "10")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("LEDGER_BACKEND", "memory")

	cfg := LoadConfig()
	require.Equal(t, "9000", cfg.AppPort)
	require.Equal(t, 2, cfg.RedisDB)
	require.True(t, cfg.IsProd)
	require.Equal(t, "/etc/reels/catalog.yaml", cfg.CatalogPath)
	require.Equal(t, 10, cfg.WithdrawPerHour)
	require.Equal(t, 5*time.Second, cfg.CacheTTL)
	require.Equal(t, "memory", cfg.LedgerBackend)
	require.Equal(t, "reels:secret@tcp(db:3306)/monetization?parseTime=true", cfg.DSN())
}
