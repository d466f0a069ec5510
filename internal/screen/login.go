package screen

import (
	"context"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/notify"
	"github.com/restaurant-pos/admin/internal/session"
)

// DashboardRoute is where a successful login lands.
const DashboardRoute = "/dashboard"

// AuthAPI is the slice of the gateway client the login screen needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
}

// LoginScreen drives the login form.
type LoginScreen struct {
	client   AuthAPI
	session  *session.Manager
	toasts   *notify.Center
	navigate Navigator
}

func NewLoginScreen(client AuthAPI, sess *session.Manager, toasts *notify.Center, navigate Navigator) *LoginScreen {
	return &LoginScreen{client: client, session: sess, toasts: toasts, navigate: navigate}
}

// Submit runs one login attempt. remember decides which storage scope the
// token lands in. A success without a recognizable token is an error, not a
// silent half-login.
func (s *LoginScreen) Submit(ctx context.Context, email, password string, remember bool) error {
	if email == "" || password == "" {
		s.toasts.Error(notify.MsgMissingInput)
		return session.ErrNoToken
	}

	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgActionFailed))
		return err
	}

	token, err := session.ExtractToken(res.Raw)
	if err != nil {
		s.toasts.Error("Đăng nhập thành công nhưng không tìm thấy token")
		return err
	}
	if err := s.session.SetToken(token, remember); err != nil {
		return err
	}

	if s.navigate != nil {
		s.navigate(DashboardRoute)
	}
	return nil
}

// Logout clears the session and returns to the login screen.
func (s *LoginScreen) Logout() {
	s.session.Clear()
	if s.navigate != nil {
		s.navigate(api.LoginRoute)
	}
}
