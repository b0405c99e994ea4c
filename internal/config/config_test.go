package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SESSION_STORE", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "", cfg.Backend.BaseURL)
	assert.Equal(t, "100", cfg.Checkout.FreeShippingThreshold.String())
	assert.Equal(t, "9.99", cfg.Checkout.ShippingFee.String())
	assert.Equal(t, 825, cfg.Checkout.TaxRateBasis)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("BACKEND_BASE_URL", "http://backend:8080/api")
	t.Setenv("SHIPPING_FEE", "4.50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "http://backend:8080/api", cfg.Backend.BaseURL)
	assert.Equal(t, "4.5", cfg.Checkout.ShippingFee.String())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"STORAGE_DRIVER": "sqlite",
		"SESSION_STORE":  "file",
		"REDIS_DB":       "one",
		"SESSION_TTL":    "forever",
		"SHIPPING_FEE":   "cheap",
		"TAX_RATE_BASIS": "-1",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}
