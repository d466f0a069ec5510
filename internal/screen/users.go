package screen

import (
	"context"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/enum"
	"github.com/restaurant-pos/admin/internal/notify"
)

// UsersAPI is the slice of the gateway client the staff screen needs.
type UsersAPI interface {
	Users(ctx context.Context, page, size int) ([]api.User, *api.Page, error)
	CreateUser(ctx context.Context, in api.CreateUserInput) error
	UpdateUser(ctx context.Context, id string, in api.UpdateUserInput) error
	ActivateUser(ctx context.Context, id string) error
	BanUser(ctx context.Context, id string) error
}

// UsersScreen manages staff accounts. Ban/activate is the one optimistic
// mutation in the console: the status flips locally first and rolls back
// if the backend rejects it.
type UsersScreen struct {
	client UsersAPI
	toasts *notify.Center

	users []api.User

	StatusFilter string // "" means all
	RoleFilter   string // "" means all
	Search       string
}

func NewUsersScreen(client UsersAPI, toasts *notify.Center) *UsersScreen {
	return &UsersScreen{client: client, toasts: toasts}
}

// Load fetches staff accounts.
func (s *UsersScreen) Load(ctx context.Context) error {
	users, _, err := s.client.Users(ctx, 0, 1000)
	if err != nil {
		s.toasts.Error(notify.MsgLoadFailed)
		return err
	}
	s.users = users
	return nil
}

func (s *UsersScreen) Users() []api.User { return s.users }

// Filtered applies status and role filters plus search over name, email
// and phone.
func (s *UsersScreen) Filtered() []api.User {
	var out []api.User
	for _, u := range s.users {
		if s.StatusFilter != "" && u.Status != s.StatusFilter {
			continue
		}
		if s.RoleFilter != "" && u.RoleCode != s.RoleFilter {
			continue
		}
		if !containsFold(u.FullName, s.Search) &&
			!containsFold(u.Email, s.Search) &&
			!containsFold(u.Phone, s.Search) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Create validates and adds a staff account.
func (s *UsersScreen) Create(ctx context.Context, in api.CreateUserInput) error {
	if in.Email == "" || in.Username == "" || in.Password == "" || !enum.IsValidRole(in.RoleCode) {
		s.toasts.Error(notify.MsgMissingInput)
		return errMissingInput
	}
	if in.Password != in.ConfirmPassword {
		s.toasts.Error(notify.MsgPasswordMismatch)
		return errMissingInput
	}
	if err := s.client.CreateUser(ctx, in); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgSaveFailed))
		return err
	}
	s.toasts.Success(notify.MsgCreated)
	return s.Load(ctx)
}

// Update saves changes to another user's profile. Email is immutable and
// therefore absent from the input.
func (s *UsersScreen) Update(ctx context.Context, id string, in api.UpdateUserInput) error {
	if err := s.client.UpdateUser(ctx, id, in); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgSaveFailed))
		return err
	}
	s.toasts.Success(notify.MsgUpdated)
	return s.Load(ctx)
}

// ToggleStatus bans an active user or re-activates a banned one. The local
// status flips immediately; a backend failure flips it back and reports
// the error.
func (s *UsersScreen) ToggleStatus(ctx context.Context, id string) error {
	idx := -1
	for i, u := range s.users {
		if u.ID.String() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errMissingInput
	}

	prev := s.users[idx].Status
	next := enum.UserStatusBanned
	if prev == enum.UserStatusBanned {
		next = enum.UserStatusActive
	}
	s.users[idx].Status = next

	var err error
	if next == enum.UserStatusBanned {
		err = s.client.BanUser(ctx, id)
	} else {
		err = s.client.ActivateUser(ctx, id)
	}
	if err != nil {
		s.users[idx].Status = prev // rollback
		s.toasts.Error(api.ErrorMessage(err, notify.MsgActionFailed))
		return err
	}
	s.toasts.Success(notify.MsgActionDone)
	return nil
}
