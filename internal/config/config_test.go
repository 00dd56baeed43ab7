// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "seed", cfg.Catalog.Backend)
	assert.Equal(t, "memory", cfg.KV.Backend)
	assert.Equal(t, "mock", cfg.Checkout.Provider)
	assert.Equal(t, "/checkout/success", cfg.Checkout.SuccessURL)
	assert.InDelta(t, 150.0, cfg.Storefront.FreeShippingThreshold, 0.001)
	assert.InDelta(t, 9.99, cfg.Storefront.FlatShippingRate, 0.001)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KV_BACKEND", "file")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "200")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "file", cfg.KV.Backend)
	assert.InDelta(t, 200.0, cfg.Storefront.FreeShippingThreshold, 0.001)
}

func TestValidateRejectsDefaultPasswordInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("ADMIN_PASSWORD", "a-real-secret")
	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}

func TestValidateRejectsUnknownBackends(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "carrier-pigeon")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRequiresS3Bucket(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "s3")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("CATALOG_S3_BUCKET", "nes-catalog")
	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "s3", cfg.Catalog.Backend)
}

func TestSessionSecretFallsBackToPassword(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, cfg.Admin.Password, cfg.SessionSecret())

	t.Setenv("ADMIN_SESSION_SECRET", "dedicated")
	cfg, err = Load()
	assert.NoError(t, err)
	assert.Equal(t, "dedicated", cfg.SessionSecret())
}
