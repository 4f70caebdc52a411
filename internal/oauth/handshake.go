// ABOUTME: Completes the federated login round trip from the identity provider redirect
// ABOUTME: Parses token and user query parameters and persists them into the session store

package oauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"unicode/utf8"

	"github.com/campusmarket/market-cli/internal/nav"
)

// CallbackPath is the fixed application path the identity provider redirects to
const CallbackPath = "/auth/google/callback"

var (
	// ErrMissingParams means the redirect lacked token or user
	ErrMissingParams = errors.New("no token or user in callback")
	// ErrMalformedUser means the user parameter was not valid JSON
	ErrMalformedUser = errors.New("error parsing user data")
	// ErrStore means the session could not be persisted
	ErrStore = errors.New("error storing session")
)

// SessionWriter is the part of the session store the handshake needs
type SessionWriter interface {
	Establish(token, rawUser string) error
}

// Result is the single transition the handshake makes
type Result struct {
	// Next must be carried out by the caller; nothing else follows the handshake
	Next nav.Action
	// Err is set when the redirect did not produce a session
	Err error
	// UserID of the new session, when Err is nil
	UserID string
}

// Handshake turns a redirect query into a session
type Handshake struct {
	sessions SessionWriter
}

// NewHandshake creates a handshake writing into sessions
func NewHandshake(sessions SessionWriter) *Handshake {
	return &Handshake{sessions: sessions}
}

// Complete runs the handshake. On success the caller must reload all state
// from storage; on failure it returns to the home view with nothing persisted.
func (h *Handshake) Complete(query url.Values) Result {
	token := query.Get("token")
	userParam := query.Get("user")

	if token == "" || userParam == "" {
		slog.Error("OAuth callback incomplete", "has_token", token != "", "has_user", userParam != "")
		return Result{Next: nav.PushTo(nav.Root), Err: ErrMissingParams}
	}

	// Query parsing decoded once already; the provider percent-encodes the
	// JSON itself, so decode a second time. '+' stays literal.
	rawUser, err := url.PathUnescape(userParam)
	if err != nil {
		slog.Error("Error parsing user data", "error", err)
		return Result{Next: nav.PushTo(nav.Root), Err: ErrMalformedUser}
	}
	if !utf8.ValidString(rawUser) {
		slog.Error("Error parsing user data", "error", "decoded user is not valid UTF-8")
		return Result{Next: nav.PushTo(nav.Root), Err: ErrMalformedUser}
	}

	fields, err := parseObject(rawUser)
	if err != nil {
		slog.Error("Error parsing user data", "error", err)
		return Result{Next: nav.PushTo(nav.Root), Err: ErrMalformedUser}
	}

	if err := h.sessions.Establish(token, rawUser); err != nil {
		slog.Error("Failed to store session", "error", err)
		return Result{Next: nav.PushTo(nav.Root), Err: fmt.Errorf("%w: %v", ErrStore, err)}
	}

	return Result{Next: nav.ReloadTo(nav.Root), UserID: stringField(fields, "user_id")}
}

// CompleteURL runs the handshake on a full redirect URL
func (h *Handshake) CompleteURL(rawURL string) Result {
	u, err := url.Parse(rawURL)
	if err != nil {
		slog.Error("OAuth callback URL invalid", "error", err)
		return Result{Next: nav.PushTo(nav.Root), Err: ErrMissingParams}
	}
	return h.Complete(u.Query())
}

func parseObject(raw string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("user is not a JSON object")
	}
	return fields, nil
}

// stringField renders a scalar field as text, whatever its JSON type
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
