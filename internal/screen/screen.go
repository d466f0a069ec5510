// Package screen holds the headless controllers behind each console
// screen. A controller fetches its collections through the API gateway
// client, keeps only transient view-state (refetched on navigation or
// explicit refresh), applies client-side filters, and reports outcomes
// through the toast center. Nothing here is authoritative; the backend is.
package screen

import (
	"errors"
	"strings"
)

// errMissingInput marks client-side validation failures that blocked a
// submission before any network call.
var errMissingInput = errors.New("missing required input")

// Navigator switches the visible screen ("/dashboard", "/login", ...).
type Navigator func(route string)

// containsFold is the case-insensitive substring match used by every
// screen's free-text search.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
