package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "storefront-test",
		MaxRefreshCount:        3,
	})
}

func TestGenerateTokenPair(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "ada@example.com",
		Role:   "customer",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	t.Run("access token validates", func(t *testing.T) {
		claims, err := service.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "ada@example.com", claims.Email)
		assert.Equal(t, "customer", claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("refresh token validates as refresh only", func(t *testing.T) {
		_, err := service.ValidateAccessToken(pair.RefreshToken)
		require.Error(t, err)

		claims, err := service.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	})
}

func TestValidateAccessToken(t *testing.T) {
	service := newTestService()

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "different-secret",
			AccessTokenExpiration:  time.Minute,
			RefreshTokenExpiration: time.Hour,
		})
		pair, err := other.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                 "test-secret",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
		})
		pair, err := expired.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = expired.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	service := newTestService()

	t.Run("issues new pair with updated role", func(t *testing.T) {
		pair, err := service.GenerateTokenPair(GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "ada@example.com",
			Role:   "customer",
		})
		require.NoError(t, err)

		fresh, err := service.RefreshTokenPair(pair.RefreshToken, "ada@example.com", "admin")
		require.NoError(t, err)

		claims, err := service.ValidateAccessToken(fresh.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)

		refreshClaims, err := service.ValidateRefreshToken(fresh.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, refreshClaims.RefreshCount)
	})

	t.Run("enforces the refresh count limit", func(t *testing.T) {
		pair, err := service.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		current := pair
		for range 3 {
			current, err = service.RefreshTokenPair(current.RefreshToken, "", "customer")
			require.NoError(t, err)
		}

		_, err = service.RefreshTokenPair(current.RefreshToken, "", "customer")
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		pair, err := service.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = service.RefreshTokenPair(pair.AccessToken, "", "customer")
		require.Error(t, err)
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	t.Run("unknown jti is not blacklisted", func(t *testing.T) {
		revoked, err := blacklist.IsBlacklisted(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("added jti is blacklisted until ttl passes", func(t *testing.T) {
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Minute))
		revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired entries drop out", func(t *testing.T) {
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-2", -time.Second))
		revoked, err := blacklist.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
