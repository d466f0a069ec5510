package screen

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/notify"
	"github.com/restaurant-pos/admin/internal/session"
	"github.com/restaurant-pos/admin/internal/storage"
)

type fakeAuthAPI struct {
	raw json.RawMessage
	err error
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.LoginResult{Raw: f.raw}, nil
}

func loginHarness(auth *fakeAuthAPI) (*LoginScreen, *session.Manager, *storage.MemStore, *storage.MemStore, *[]string, *[]string) {
	persistent := storage.NewMemStore()
	sessStore := storage.NewMemStore()
	sess := session.NewManager(persistent, sessStore)

	center := notify.NewCenter()
	var toasts []string
	center.Subscribe(func(msg notify.Message) { toasts = append(toasts, msg.Text) })

	var routes []string
	s := NewLoginScreen(auth, sess, center, func(route string) { routes = append(routes, route) })
	return s, sess, persistent, sessStore, &toasts, &routes
}

func TestLoginSuccessSessionScope(t *testing.T) {
	auth := &fakeAuthAPI{raw: json.RawMessage(`{"data":{"accessToken":"tok-1"}}`)}
	s, sess, persistent, sessStore, _, routes := loginHarness(auth)

	require.NoError(t, s.Submit(context.Background(), "admin@restaurant.com", "password123", false))
	assert.Equal(t, "tok-1", sess.Token())
	_, inPersistent := persistent.Get(session.TokenKey)
	assert.False(t, inPersistent)
	_, inSession := sessStore.Get(session.TokenKey)
	assert.True(t, inSession)
	assert.Equal(t, []string{DashboardRoute}, *routes)
}

func TestLoginRememberMePersists(t *testing.T) {
	auth := &fakeAuthAPI{raw: json.RawMessage(`{"token":"tok-2"}`)}
	s, sess, persistent, sessStore, _, _ := loginHarness(auth)

	require.NoError(t, s.Submit(context.Background(), "admin@restaurant.com", "password123", true))
	assert.Equal(t, "tok-2", sess.Token())
	_, inPersistent := persistent.Get(session.TokenKey)
	assert.True(t, inPersistent)
	_, inSession := sessStore.Get(session.TokenKey)
	assert.False(t, inSession)
}

func TestLoginMissingInput(t *testing.T) {
	s, sess, _, _, toasts, _ := loginHarness(&fakeAuthAPI{})

	assert.Error(t, s.Submit(context.Background(), "", "password", false))
	assert.Error(t, s.Submit(context.Background(), "a@b.c", "", false))
	assert.Equal(t, "", sess.Token())
	assert.Contains(t, *toasts, notify.MsgMissingInput)
}

func TestLoginInvalidCredentialsMessage(t *testing.T) {
	auth := &fakeAuthAPI{err: &api.Error{Status: http.StatusUnauthorized, Message: "unauthorized"}}
	s, _, _, _, toasts, routes := loginHarness(auth)

	assert.Error(t, s.Submit(context.Background(), "a@b.c", "wrong", false))
	assert.Contains(t, *toasts, api.MsgInvalidCredentials)
	assert.Empty(t, *routes)
}

func TestLoginSuccessWithoutToken(t *testing.T) {
	auth := &fakeAuthAPI{raw: json.RawMessage(`{"data":{"user":{"id":"x"}}}`)}
	s, sess, _, _, toasts, routes := loginHarness(auth)

	err := s.Submit(context.Background(), "a@b.c", "pw", false)
	assert.ErrorIs(t, err, session.ErrNoToken)
	assert.Equal(t, "", sess.Token())
	assert.Contains(t, *toasts, "Đăng nhập thành công nhưng không tìm thấy token")
	assert.Empty(t, *routes)
}

func TestLogoutClearsAndNavigates(t *testing.T) {
	auth := &fakeAuthAPI{raw: json.RawMessage(`{"token":"tok"}`)}
	s, sess, _, _, _, routes := loginHarness(auth)
	require.NoError(t, s.Submit(context.Background(), "a@b.c", "pw", true))

	s.Logout()
	assert.Equal(t, "", sess.Token())
	assert.Equal(t, []string{DashboardRoute, api.LoginRoute}, *routes)
}
