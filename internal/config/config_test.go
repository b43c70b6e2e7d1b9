// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("MONGODB_DATABASE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "FreshCartDB", cfg.Database.Name)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeoutDuration())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "8088")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		JWT:         JWTConfig{SecretKey: defaultTokenSecret, TTLHours: 168},
		Database:    DatabaseConfig{URI: "mongodb://db"},
		Payment:     PaymentConfig{StripeSecretKey: "sk_test"},
	}
	assert.Error(t, cfg.Validate())

	cfg.JWT.SecretKey = "something-long-and-random"
	assert.NoError(t, cfg.Validate())

	cfg.Payment.StripeSecretKey = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	cfg := &Config{
		JWT:      JWTConfig{SecretKey: "s", TTLHours: 0},
		Database: DatabaseConfig{URI: "mongodb://db"},
	}
	assert.Error(t, cfg.Validate())
}
