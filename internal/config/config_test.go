package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.FreeDailySearchLimit)
	assert.Equal(t, -1, cfg.ProDailySearchLimit)
	assert.Equal(t, int64(12450), cfg.SavingsBaseline)
	assert.Equal(t, 30*time.Minute, cfg.DealCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, time.UTC, cfg.QuotaLocation())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.TrustProxyHeaders)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("FREE_DAILY_SEARCH_LIMIT", "10")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DEAL_CACHE_TTL", "5m")
	t.Setenv("QUOTA_TIMEZONE", "Australia/Sydney")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 10, cfg.FreeDailySearchLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.DealCacheTTL)
	assert.Equal(t, "Australia/Sydney", cfg.QuotaLocation().String())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("bad timezone", func(t *testing.T) {
		t.Setenv("QUOTA_TIMEZONE", "Mars/Olympus")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad limit", func(t *testing.T) {
		t.Setenv("FREE_DAILY_SEARCH_LIMIT", "-5")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unparsable int", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
		_, err := Load()
		assert.Error(t, err)
	})
}
