package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// LoginResult carries the raw login payload alongside whatever user object
// could be decoded from it. Token extraction is the session manager's job
// because the token field name varies by backend version.
type LoginResult struct {
	Raw  json.RawMessage
	User User
}

// Login authenticates with email + password. A 401 here still runs the
// global handler, which is harmless: there is no token to clear and the
// user is already on the login screen.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	raw, err := c.do(ctx, http.MethodPost, "/auth/login", nil, body)
	if err != nil {
		return nil, err
	}

	res := &LoginResult{Raw: raw}
	var payload struct {
		User User `json:"user"`
	}
	if err := DecodeObject(raw, &payload); err == nil {
		res.User = payload.User
	}
	return res, nil
}
