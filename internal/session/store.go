// ABOUTME: Single source of truth for who is logged in
// ABOUTME: Loads token and user from storage once, mutated only by handshake, edit and logout

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/campusmarket/market-cli/internal/nav"
)

// ErrNotLoggedIn is returned by operations that need an active session
var ErrNotLoggedIn = errors.New("not logged in")

// Session is a snapshot of the authentication state.
// Token and User are both set or both empty.
type Session struct {
	Token string
	User  *client.User
	// Loading is true until the store has read persisted state
	Loading bool
}

// Authenticated reports whether a user is logged in
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Store owns the session for one client process
type Store struct {
	storage  Storage
	loginURL string

	mu      sync.RWMutex
	loaded  bool
	token   string
	user    *client.User
	rawUser string
}

// NewStore creates a store over storage. loginURL is the identity-provider
// entry point Login navigates to.
func NewStore(storage Storage, loginURL string) *Store {
	return &Store{
		storage:  storage,
		loginURL: loginURL,
	}
}

// Init reads persisted state once; later calls are no-ops
func (s *Store) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return
	}
	s.loadLocked()
}

// Reload discards in-memory state and reads storage again
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
}

func (s *Store) loadLocked() {
	s.loaded = true
	s.clearLocked()

	token, hasToken, err := s.storage.Get(TokenKey)
	if err != nil {
		slog.Warn("Failed to read stored token", "error", err)
		return
	}
	rawUser, hasUser, err := s.storage.Get(UserKey)
	if err != nil {
		slog.Warn("Failed to read stored user", "error", err)
		return
	}
	if !hasToken || !hasUser || token == "" || rawUser == "" {
		slog.Debug("No stored session")
		return
	}

	user, err := parseUser(rawUser)
	if err != nil {
		slog.Warn("Stored user is not valid JSON, ignoring session", "error", err)
		return
	}

	s.token = token
	s.user = user
	s.rawUser = rawUser
	slog.Debug("Session loaded", "user_id", user.UserID)
}

func (s *Store) clearLocked() {
	s.token = ""
	s.user = nil
	s.rawUser = ""
}

// Current returns a snapshot of the session
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return Session{Loading: true}
	}
	var user *client.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return Session{Token: s.token, User: user}
}

// Loading reports whether persisted state has not been read yet
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.loaded
}

// Token implements client.TokenSource
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// RawUser returns the stored user JSON exactly as persisted
func (s *Store) RawUser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rawUser
}

// Login returns the navigation to the identity provider. The session is
// populated later by the redirect handshake, not by Login.
func (s *Store) Login() nav.Action {
	return nav.ExternalTo(s.loginURL)
}

// Establish persists and activates a session from the identity provider.
// rawUser is stored verbatim. Token and user are written together, so a
// failed write leaves both the stored and the active session as they were.
func (s *Store) Establish(token, rawUser string) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}
	user, err := parseUser(rawUser)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.SetAll(map[string]string{TokenKey: token, UserKey: rawUser}); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.loaded = true
	s.token = token
	s.user = user
	s.rawUser = rawUser
	slog.Info("Session established", "user_id", user.UserID)
	return nil
}

// UpdateUser replaces the stored user after a profile edit, keeping the token
func (s *Store) UpdateUser(rawUser string) error {
	user, err := parseUser(rawUser)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return ErrNotLoggedIn
	}
	if err := s.storage.Set(UserKey, rawUser); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	s.user = user
	s.rawUser = rawUser
	return nil
}

// Logout clears persisted and in-memory state. No backend call is made.
// Memory is cleared even when storage removal fails.
func (s *Store) Logout() (nav.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.clearLocked()
	if err := s.storage.Remove(TokenKey, UserKey); err != nil {
		return nav.ReloadTo(nav.Root), fmt.Errorf("failed to clear stored session: %w", err)
	}
	slog.Info("Logged out")
	return nav.ReloadTo(nav.Root), nil
}

// parseUser accepts any JSON object as a user identity. Fields that do not
// fit the canonical User are left empty rather than rejecting the session.
func parseUser(raw string) (*client.User, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		return nil, fmt.Errorf("invalid user JSON: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("user is not a JSON object")
	}

	var user client.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		slog.Debug("Stored user does not match the user schema", "error", err)
	}
	return &user, nil
}
