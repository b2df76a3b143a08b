package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "ADMIN_EMAILS", "CORS_ORIGINS", "ORDER_INTAKE_MODE", "RATE_LIMIT_RPS", "TRUSTED_PROXIES"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "best_effort", cfg.OrderIntakeMode)
	assert.Empty(t, cfg.AdminEmails)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Equal(t, 10*time.Minute, cfg.RateLimitIdleTTL)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestFromEnvParsesLists(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " chef@example.com, ,owner@example.com ")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("PROTECT_ADMIN_API", "true")
	t.Setenv("RATE_LIMIT_BURST", "nope")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.5")

	cfg := FromEnv()
	assert.Equal(t, []string{"chef@example.com", "owner@example.com"}, cfg.AdminEmails)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.True(t, cfg.ProtectAdminAPI)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.5"}, cfg.TrustedProxies)
}
