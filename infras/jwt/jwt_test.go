package jwt_test

import (
	"context"
	"testing"
	"time"

	"meetspace/config"
	"meetspace/infras/jwt"
	"meetspace/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "meetspace"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := jwt.New(testConfig(), mocks.NewOtel())

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "ana@example.com", "user")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.TokenID)
	assert.Greater(t, claims.TTL(), 14*time.Minute)

	refresh, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, claims.TokenID, refresh.TokenID)
}

func TestValidateToken_WrongType(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.JWT.RefreshSecret = cfg.JWT.AccessSecret
	svc := jwt.New(cfg, mocks.NewOtel())

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "ana@example.com", "user")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}

func TestValidateToken_Invalid(t *testing.T) {
	ctx := context.Background()
	svc := jwt.New(testConfig(), mocks.NewOtel())

	_, err := svc.ValidateToken(ctx, "not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	other := testConfig()
	other.JWT.AccessSecret = "another-secret"
	pair, err := jwt.New(other, mocks.NewOtel()).GenerateTokenPair(ctx, "user-1", "ana@example.com", "user")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.JWT.AccessExpireMin = -1
	svc := jwt.New(cfg, mocks.NewOtel())

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "ana@example.com", "user")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"", "Basic abc", "Bearer "} {
		_, err := jwt.ExtractTokenFromHeader(header)
		assert.Error(t, err, header)
	}
}
