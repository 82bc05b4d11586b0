package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kopytm/home-ppr-app/internal/models"
	"github.com/kopytm/home-ppr-app/pkg/config"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
)

func newAuthService(t *testing.T, password string) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(config.AuthConfig{
		Enabled:      true,
		Username:     "owner",
		PasswordHash: string(hash),
		JWTSecret:    "secret",
		TokenExpiry:  time.Hour,
	}, validator.New(), zap.NewNop())
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "owner", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "owner", Password: "battery staple"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginWrongUsername(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "intruder", Password: "correct horse"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginValidatesPayload(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "owner"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "owner", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Username)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceDisabledWithoutHash(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{}, validator.New(), zap.NewNop())
	assert.False(t, svc.Enabled())
}
