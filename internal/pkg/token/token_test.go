//go:build unit

package token_test

import (
	"testing"
	"time"

	"parking-booking-gateway/internal/pkg/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-only"))
	require.NoError(t, err)
	return raw
}

func TestInspect(t *testing.T) {
	raw := sign(t, jwt.MapClaims{"user_id": "42", "role": "user"})

	claims, err := token.Inspect(raw)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "user", claims.Role)

	_, err = token.Inspect("42|personal-access-token")
	assert.ErrorIs(t, err, token.ErrOpaqueToken)
}

func TestExpired(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "past exp", raw: sign(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), want: true},
		{name: "exp equal to now", raw: sign(t, jwt.MapClaims{"exp": now.Unix()}), want: true},
		{name: "future exp", raw: sign(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), want: false},
		{name: "no exp", raw: sign(t, jwt.MapClaims{"user_id": "42"}), want: false},
		{name: "opaque", raw: "42|personal-access-token", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, token.Expired(tt.raw, now))
		})
	}
}
