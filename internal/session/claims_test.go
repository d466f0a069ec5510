package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restaurant-pos/admin/internal/storage"
)

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestPeekClaims(t *testing.T) {
	m := NewManager(storage.NewMemStore(), storage.NewMemStore())

	_, err := m.PeekClaims()
	assert.Error(t, err, "no token means no claims")

	tok := signToken(t, Claims{
		UserID: "u1",
		Email:  "admin@restaurant.com",
		Role:   "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, m.SetToken(tok, false))

	claims, err := m.PeekClaims()
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin@restaurant.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestTokenExpired(t *testing.T) {
	m := NewManager(storage.NewMemStore(), storage.NewMemStore())
	now := time.Now()

	// No token at all: not expired, the 401 handler is the real gate.
	assert.False(t, m.TokenExpired(now))

	live := signToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}})
	require.NoError(t, m.SetToken(live, false))
	assert.False(t, m.TokenExpired(now))

	expired := signToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}})
	require.NoError(t, m.SetToken(expired, false))
	assert.True(t, m.TokenExpired(now))

	// Tokens without exp are treated as live.
	noExp := signToken(t, Claims{UserID: "u1"})
	require.NoError(t, m.SetToken(noExp, false))
	assert.False(t, m.TokenExpired(now))
}
