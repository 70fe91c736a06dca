package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/core/internal/infrastructure/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: 168 * time.Hour,
		Issuer:    "taskdeck-test",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testJWTConfig())
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenExpiredFailsVerify(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ExpiresIn = -time.Hour
	svc := NewTokenService(cfg)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestTokenTamperedSignatureFailsVerify(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	other := NewTokenService(config.JWTConfig{
		Secret:    "a-different-secret",
		ExpiresIn: 168 * time.Hour,
		Issuer:    "taskdeck-test",
	})
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestTokenMalformedFailsVerify(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(bad)
		assert.Error(t, err, "token %q should not verify", bad)
	}
}

func TestTokenUnsignedAlgRejected(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	assert.Error(t, err)
}

func TestTokenServiceFailsClosedWithoutSecret(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{ExpiresIn: time.Hour})

	_, err := svc.Issue(uuid.New())
	assert.Error(t, err)

	good := NewTokenService(testJWTConfig())
	token, err := good.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}
