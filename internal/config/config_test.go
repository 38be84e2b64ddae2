package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "credential-service", cfg.App.Name)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
}

func TestLoad_ProductionRequiresExplicitSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoad_ProductionWithSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "a-real-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.Auth.JWTSecret)
}

func TestLoad_TokenTTLOverride(t *testing.T) {
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL())
}

func TestAuthConfig_TokenTTLFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Hour, AuthConfig{TokenTTLMinutes: 0}.TokenTTL())
	assert.Equal(t, time.Hour, AuthConfig{TokenTTLMinutes: -5}.TokenTTL())
}

func TestAppConfig_RequestTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Duration(0), AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
	assert.Equal(t, 30*time.Second, AppConfig{RequestTimeoutSeconds: 30}.RequestTimeout())
}
