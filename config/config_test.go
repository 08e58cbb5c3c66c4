package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, "5432", cfg.DBPort)
	require.Equal(t, []byte("test-secret"), cfg.JWTSecret)
	require.Equal(t, 30*time.Second, cfg.AccessTokenTTL)
	require.Equal(t, 4*7*24*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, 24*time.Hour, cfg.VerificationTokenTTL)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REFRESH_TOKEN_TTL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}
