package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "hybrid", cfg.Classifier.Strategy)
	assert.Empty(t, cfg.Classifier.Model)
	assert.Equal(t, 5*time.Minute, cfg.Tenant.CacheTTL)
	assert.Equal(t, time.UTC, cfg.DefaultLocation())
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "Production")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.test,https://b.test")
	t.Setenv("LLM_PROVIDER", "claude")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("TENANT_CACHE_TTL", "30s")
	t.Setenv("DEFAULT_TIMEZONE", "America/Chicago")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSAllowOrigins)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, 30*time.Second, cfg.Tenant.CacheTTL)
	assert.Equal(t, "America/Chicago", cfg.DefaultLocation().String())
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv("TENANT_CACHE_TTL", "soon")
	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_InvalidTimezone(t *testing.T) {
	t.Setenv("DEFAULT_TIMEZONE", "Nowhere/Special")
	_, err := Parse()
	assert.Error(t, err)
}
