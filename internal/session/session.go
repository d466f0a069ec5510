// Package session tracks the authenticated user's bearer token across the
// two storage scopes and tells interested parts of the console when the
// auth state changes.
package session

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/restaurant-pos/admin/internal/storage"
)

// TokenKey is the canonical storage key. The legacy aliases are still read
// and cleared so tokens written by older console builds keep working.
const TokenKey = "token"

var legacyTokenKeys = []string{"access_token", "jwt"}

var allTokenKeys = append([]string{TokenKey}, legacyTokenKeys...)

// ErrNoToken is returned when a login response carries no recognizable token.
var ErrNoToken = errors.New("no token in login response")

// Manager owns the bearer token. The persistent scope wins over the session
// scope when both hold a token; within a scope the canonical key wins over
// legacy aliases. SetToken clears everything first, so in practice only one
// scope is ever populated.
type Manager struct {
	mu         sync.RWMutex
	persistent storage.Store
	session    storage.Store
	listeners  []func(authenticated bool)
}

// NewManager wires the two storage scopes.
func NewManager(persistent, session storage.Store) *Manager {
	return &Manager{persistent: persistent, session: session}
}

// Token returns the current bearer token, or "" when not authenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, store := range []storage.Store{m.persistent, m.session} {
		for _, key := range allTokenKeys {
			if v, ok := store.Get(key); ok && v != "" {
				return v
			}
		}
	}
	return ""
}

// Authenticated reports whether a token is present in either scope.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// SetToken stores the token. Both scopes are wiped first so a stale token
// can never linger in the scope that is not being written.
func (m *Manager) SetToken(token string, remember bool) error {
	m.mu.Lock()
	m.clearLocked()
	target := m.session
	if remember {
		target = m.persistent
	}
	err := target.Set(TokenKey, token)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.notify(true)
	return nil
}

// Clear removes every token key from both scopes. Safe to call repeatedly;
// the global 401 handler and explicit logout both funnel through here.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.clearLocked()
	m.mu.Unlock()
	m.notify(false)
}

func (m *Manager) clearLocked() {
	for _, store := range []storage.Store{m.persistent, m.session} {
		for _, key := range allTokenKeys {
			store.Delete(key)
		}
	}
}

// Subscribe registers a listener invoked after every token set or clear.
func (m *Manager) Subscribe(fn func(authenticated bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify(authenticated bool) {
	m.mu.RLock()
	listeners := make([]func(bool), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()
	for _, fn := range listeners {
		fn(authenticated)
	}
}

// ExtractToken digs the token out of a login response payload. Backends
// have shipped it under several names, sometimes nested under "data".
func ExtractToken(payload json.RawMessage) (string, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", ErrNoToken
	}
	if tok := tokenField(body); tok != "" {
		return tok, nil
	}
	if nested, ok := body["data"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(nested, &inner); err == nil {
			if tok := tokenField(inner); tok != "" {
				return tok, nil
			}
		}
	}
	return "", ErrNoToken
}

func tokenField(body map[string]json.RawMessage) string {
	for _, key := range []string{"token", "accessToken", "access_token"} {
		raw, ok := body[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}
