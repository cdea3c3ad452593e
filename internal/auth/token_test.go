package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapi/pkg/config"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := config.AdminConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tok, err := IssueToken(cfg, "admin@example.com", now)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	email, err := VerifyToken(tok, cfg.JWTSecret, now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", email)
}

func TestTokenExpired(t *testing.T) {
	cfg := config.AdminConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tok, err := IssueToken(cfg, "admin@example.com", now)
	require.NoError(t, err)

	_, err = VerifyToken(tok, cfg.JWTSecret, now.Add(2*time.Hour))
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	cfg := config.AdminConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	now := time.Now()

	tok, err := IssueToken(cfg, "admin@example.com", now)
	require.NoError(t, err)

	_, err = VerifyToken(tok, "other-secret", now)
	assert.Error(t, err)
}

func TestTokenMissingSecret(t *testing.T) {
	_, err := IssueToken(config.AdminConfig{TokenTTL: time.Hour}, "admin@example.com", time.Now())
	assert.Error(t, err)

	_, err = VerifyToken("whatever", "", time.Now())
	assert.Error(t, err)
}
