package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	u := User{ID: uuid.New(), Email: "cook@example.com"}

	got, err := FromContext(WithUser(context.Background(), u))
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoUser)

	_, err = FromContext(WithUser(context.Background(), User{}))
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestTokenService(t *testing.T) {
	svc, err := NewTokenService("secret")
	require.NoError(t, err)

	u := User{ID: uuid.New(), Email: "cook@example.com"}

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateToken(u, time.Hour)
		require.NoError(t, err)

		got, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, u, got)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.GenerateToken(u, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenService("other")
		require.NoError(t, err)
		token, err := other.GenerateToken(u, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)
}
