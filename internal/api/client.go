// Package api is the single choke point for backend communication. It
// attaches the bearer token, normalizes the backend's inconsistent response
// envelopes, extracts human-readable error messages, and applies the global
// 401 side effect (clear session, navigate to login).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// LoginRoute is where the navigator is sent after any 401.
const LoginRoute = "/login"

// Session is what the client needs from the session manager: the current
// token for outgoing requests, and Clear for the global 401 handler.
type Session interface {
	Token() string
	Clear()
}

// Client issues all backend requests. Resource groups (Auth, Orders, ...)
// hang off it as typed method sets.
type Client struct {
	baseURL  string
	httpc    *http.Client
	session  Session
	navigate func(route string)
}

// New creates a Client. navigate may be nil when no screen routing exists
// (e.g. one-shot CLI invocations).
func New(baseURL string, timeout time.Duration, sess Session, navigate func(route string)) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		httpc:    &http.Client{Timeout: timeout},
		session:  sess,
		navigate: navigate,
	}
}

// do performs one request and returns the raw response body. Every error
// path returns an *Error carrying the HTTP status and the best available
// message. A success body wrapped in {succeed:false,...} is converted to an
// error here so no caller has to re-check it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, path, query, reader, contentType)
}

func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &Error{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
	}
	if resp.StatusCode >= 400 {
		return nil, &Error{Status: resp.StatusCode, Message: extractMessage(data)}
	}

	// Some endpoints report business-rule rejections inside a 200 body.
	if msg, rejected := rejectedEnvelope(data); rejected {
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}
	return data, nil
}

// handleUnauthorized is the global 401 side effect: tokens gone from both
// scopes, user sent back to the login screen. Idempotent under repeated
// 401s from concurrent in-flight requests.
func (c *Client) handleUnauthorized() {
	c.session.Clear()
	if c.navigate != nil {
		c.navigate(LoginRoute)
	}
}

// upload posts one file as multipart/form-data under the "file" field.
func (c *Client) upload(ctx context.Context, path, filename string, file io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart body: %w", err)
	}
	return c.doRaw(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
}

// pageQuery builds the standard 0-based pagination parameters.
func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("size", fmt.Sprintf("%d", size))
	return q
}
