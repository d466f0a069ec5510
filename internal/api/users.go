package api

import (
	"context"
	"net/http"
)

// CreateUserInput is the staff creation payload. Email is immutable after
// creation, so it only appears here and not in UpdateUserInput.
type CreateUserInput struct {
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	FullName        string `json:"fullName"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Status          string `json:"status"`
	RoleCode        string `json:"roleCode"`
}

// UpdateUserInput updates mutable profile fields.
type UpdateUserInput struct {
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Username  string `json:"username"`
}

// ChangePasswordInput changes the caller's own password.
type ChangePasswordInput struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Users lists staff accounts.
func (c *Client) Users(ctx context.Context, page, size int) ([]User, *Page, error) {
	raw, err := c.do(ctx, http.MethodGet, "/users", pageQuery(page, size), nil)
	if err != nil {
		return nil, nil, err
	}
	var users []User
	pg, err := DecodeList(raw, &users)
	if err != nil {
		return nil, nil, err
	}
	return users, pg, nil
}

// CreateUser adds a staff account.
func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) error {
	_, err := c.do(ctx, http.MethodPost, "/users", nil, in)
	return err
}

// Me fetches the caller's own profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	raw, err := c.do(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var u User
	if err := DecodeObject(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateMe updates the caller's own profile.
func (c *Client) UpdateMe(ctx context.Context, in UpdateUserInput) error {
	_, err := c.do(ctx, http.MethodPut, "/users/me", nil, in)
	return err
}

// ChangePassword changes the caller's password.
func (c *Client) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	_, err := c.do(ctx, http.MethodPatch, "/users/me/change-password", nil, in)
	return err
}

// UserByID fetches one staff account.
func (c *Client) UserByID(ctx context.Context, id string) (*User, error) {
	raw, err := c.do(ctx, http.MethodGet, "/users/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var u User
	if err := DecodeObject(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser updates another staff account.
func (c *Client) UpdateUser(ctx context.Context, id string, in UpdateUserInput) error {
	_, err := c.do(ctx, http.MethodPut, "/users/"+id, nil, in)
	return err
}

// ActivateUser lifts a ban.
func (c *Client) ActivateUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPut, "/users/"+id+"/active", nil, nil)
	return err
}

// BanUser bans a staff account.
func (c *Client) BanUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPut, "/users/"+id+"/ban", nil, nil)
	return err
}
