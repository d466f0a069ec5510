package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// MsgInvalidCredentials is the fixed message shown for a 401 during login.
const MsgInvalidCredentials = "Email hoặc mật khẩu không đúng"

// Error is a failed backend request.
type Error struct {
	Status  int // 0 for transport failures
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsNotFound reports whether err is an HTTP 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an HTTP 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// ErrorMessage derives one human-readable string from any request error:
// 401 gets the fixed invalid-credentials message, other API errors use the
// server-provided message, anything else falls back to the given default.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized {
			return MsgInvalidCredentials
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	} else if err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// extractMessage pulls the most useful message out of an error body. The
// backend is not consistent about the field name, so several are tried in
// preference order; a raw string body is accepted as-is.
func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"message", "error", "detail", "title"} {
			raw, ok := obj[key]
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

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return trimmed
}

// rejectedEnvelope detects the {succeed:false,message:...} wrapper some
// endpoints use to report business-rule violations with a 200 status.
func rejectedEnvelope(body []byte) (string, bool) {
	var probe struct {
		Succeed *bool  `json:"succeed"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", false
	}
	if probe.Succeed != nil && !*probe.Succeed {
		msg := probe.Message
		if msg == "" {
			msg = "Thao tác thất bại"
		}
		return msg, true
	}
	return "", false
}
