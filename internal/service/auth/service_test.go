package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnloop/internal/config"
	"learnloop/internal/service/auth"
)

func TestIssueAndValidate(t *testing.T) {
	svc := auth.NewService(&config.Config{JWTSecret: "secret", JWTAccessExpiry: time.Minute})
	userID := uuid.New()

	token, err := svc.IssueAccessToken(userID, "ada@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestValidateRejects(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret", JWTAccessExpiry: time.Minute}
	svc := auth.NewService(cfg)

	t.Run("Wrong secret", func(t *testing.T) {
		other := auth.NewService(&config.Config{JWTSecret: "other", JWTAccessExpiry: time.Minute})
		token, err := other.IssueAccessToken(uuid.New(), "x@example.com")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := auth.NewService(&config.Config{JWTSecret: "secret", JWTAccessExpiry: -time.Minute})
		token, err := expired.IssueAccessToken(uuid.New(), "x@example.com")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Missing user id", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{Email: "x@example.com"}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
