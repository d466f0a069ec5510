package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of JWT claims the console displays (current user,
// role, expiry countdown). The token is decoded without verification: the
// console has no signing secret and the backend is the sole authority.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// PeekClaims decodes the current token for display purposes only.
func (m *Manager) PeekClaims() (*Claims, error) {
	tok := m.Token()
	if tok == "" {
		return nil, errors.New("not authenticated")
	}
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// TokenExpired reports whether the current token carries an exp claim in
// the past. Tokens without exp are treated as live; the backend's 401 is
// the real gate either way.
func (m *Manager) TokenExpired(now time.Time) bool {
	claims, err := m.PeekClaims()
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
