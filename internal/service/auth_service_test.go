package service_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZTormDev/pos/internal/config"
	"github.com/ZTormDev/pos/internal/dto"
	"github.com/ZTormDev/pos/internal/service"
)

func newTestAuth(t *testing.T) service.AuthService {
	t.Helper()
	auth, err := service.NewAuthService(&config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		AdminPassword:      "admin123",
		CashierPassword:    "cashier123",
	})
	require.NoError(t, err)
	return auth
}

func TestLogin(t *testing.T) {
	auth := newTestAuth(t)

	resp, err := auth.Login(context.Background(), dto.LoginRequest{
		Username: "cashier",
		Password: "cashier123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "Juan Perez", resp.User.Name)
	assert.Equal(t, "cashier", resp.User.Role)

	// The token verifies against the configured secret and carries the
	// attribution claims the handlers rely on.
	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "Juan Perez", claims["name"])
	assert.Equal(t, "cashier", claims["role"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newTestAuth(t)

	_, err := auth.Login(context.Background(), dto.LoginRequest{Username: "cashier", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = auth.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "cashier123"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
