package screen

import (
	"context"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/notify"
)

// ProfileAPI is the slice of the gateway client the profile screen needs.
type ProfileAPI interface {
	Me(ctx context.Context) (*api.User, error)
	UpdateMe(ctx context.Context, in api.UpdateUserInput) error
	ChangePassword(ctx context.Context, in api.ChangePasswordInput) error
}

// ProfileScreen manages the signed-in user's own account.
type ProfileScreen struct {
	client ProfileAPI
	toasts *notify.Center

	me *api.User
}

func NewProfileScreen(client ProfileAPI, toasts *notify.Center) *ProfileScreen {
	return &ProfileScreen{client: client, toasts: toasts}
}

// Load fetches the caller's profile.
func (s *ProfileScreen) Load(ctx context.Context) error {
	me, err := s.client.Me(ctx)
	if err != nil {
		s.toasts.Error(notify.MsgLoadFailed)
		return err
	}
	s.me = me
	return nil
}

func (s *ProfileScreen) Me() *api.User { return s.me }

// Save updates the profile and re-fetches it.
func (s *ProfileScreen) Save(ctx context.Context, in api.UpdateUserInput) error {
	if in.FullName == "" {
		s.toasts.Error(notify.MsgMissingInput)
		return errMissingInput
	}
	if err := s.client.UpdateMe(ctx, in); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgSaveFailed))
		return err
	}
	s.toasts.Success(notify.MsgUpdated)
	return s.Load(ctx)
}

// ChangePassword checks the confirmation locally before submitting; a
// mismatch never reaches the network.
func (s *ProfileScreen) ChangePassword(ctx context.Context, in api.ChangePasswordInput) error {
	if in.OldPassword == "" || in.NewPassword == "" {
		s.toasts.Error(notify.MsgMissingInput)
		return errMissingInput
	}
	if in.NewPassword != in.ConfirmPassword {
		s.toasts.Error(notify.MsgPasswordMismatch)
		return errMissingInput
	}
	if err := s.client.ChangePassword(ctx, in); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgActionFailed))
		return err
	}
	s.toasts.Success(notify.MsgUpdated)
	return nil
}
