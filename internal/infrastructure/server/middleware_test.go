package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpHandlers "github.com/taskdeck/core/internal/adapters/http"
	"github.com/taskdeck/core/internal/application/services"
	"github.com/taskdeck/core/internal/infrastructure/config"
	"github.com/taskdeck/core/internal/infrastructure/logger"
)

func newGuardedEcho(t *testing.T, tokens *services.TokenService) (*echo.Echo, *uuid.UUID) {
	t.Helper()

	s := &Server{logger: logger.NewNop()}

	var seen uuid.UUID
	e := echo.New()
	e.GET("/probe", func(c echo.Context) error {
		seen = httpHandlers.UserIDFromContext(c)
		return c.NoContent(http.StatusOK)
	}, s.authMiddleware(tokens))

	return e, &seen
}

func testTokens() *services.TokenService {
	return services.NewTokenService(config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: 168 * time.Hour,
		Issuer:    "taskdeck-test",
	})
}

func TestAuthGuardAllowsValidToken(t *testing.T) {
	tokens := testTokens()
	e, seen := newGuardedEcho(t, tokens)

	userID := uuid.New()
	token, err := tokens.Issue(userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, *seen)
}

func TestAuthGuardRejections(t *testing.T) {
	tokens := testTokens()
	e, seen := newGuardedEcho(t, tokens)

	expired := services.NewTokenService(config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: -time.Hour,
		Issuer:    "taskdeck-test",
	})
	expiredToken, err := expired.Issue(uuid.New())
	require.NoError(t, err)

	otherKey := services.NewTokenService(config.JWTConfig{
		Secret:    "not-the-server-secret",
		ExpiresIn: time.Hour,
		Issuer:    "taskdeck-test",
	})
	foreignToken, err := otherKey.Issue(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expiredToken},
		{"wrong signing key", "Bearer " + foreignToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*seen = uuid.Nil

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// The downstream handler must never run.
			assert.Equal(t, uuid.Nil, *seen)
		})
	}
}
