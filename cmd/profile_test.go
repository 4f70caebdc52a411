// ABOUTME: Tests for the profile show and edit commands
// ABOUTME: Verifies bearer auth, login requirement and stored user replacement

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/campusmarket/market-cli/internal/tui/forms"
)

func TestRunProfileShow_RequiresLogin(t *testing.T) {
	server := newBackend(t, nil)
	d := newTestDeps(t, server.URL)

	var buf bytes.Buffer
	exitCode := runProfileShow(context.Background(), d, &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Error: not logged in") {
		t.Errorf("expected login hint, got: %s", buf.String())
	}
}

func TestRunProfileShow_SendsBearer(t *testing.T) {
	server := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/profile": func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-alice" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(aliceUserJSON))
		},
	})
	d := newTestDeps(t, server.URL)
	loggedIn(t, d)

	var buf bytes.Buffer
	exitCode := runProfileShow(context.Background(), d, &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	for _, want := range []string{"Name:     Alice", "Email:    alice@school.edu", "Selling:  books", "User ID:  u1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output, got:\n%s", want, buf.String())
		}
	}
}

func TestRunProfileEdit_UpdatesStoredUser(t *testing.T) {
	updated := `{"user_id":"u1","email":"alice@school.edu","name":"Alice B","role":"seller","phonenumber":"555-0199","merch":"electronics"}`
	server := newBackend(t, map[string]http.HandlerFunc{
		"PUT /api/users/u1": func(w http.ResponseWriter, r *http.Request) {
			payload := decodeBody(t, r)
			if payload["name"] != "Alice B" || payload["phonenumber"] != "555-0100" || payload["merch"] != "electronics" {
				t.Errorf("unexpected payload: %v", payload)
			}
			w.Write([]byte(updated))
		},
	})
	d := newTestDeps(t, server.URL)
	loggedIn(t, d)

	override := func(p *forms.Profile) {
		p.Name = "Alice B"
		p.Merch = "electronics"
	}

	var buf bytes.Buffer
	exitCode := runProfileEdit(context.Background(), d, &buf, override, noPrompt)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Profile updated for Alice B") {
		t.Errorf("expected confirmation, got: %s", buf.String())
	}

	current := d.store.Current()
	if current.Token != "tok-alice" {
		t.Errorf("expected token to be kept, got %q", current.Token)
	}
	if current.User.Name != "Alice B" || current.User.PhoneText() != "555-0199" {
		t.Errorf("expected stored user replaced by the response, got %+v", current.User)
	}
}

func TestRunProfileEdit_RequiresLogin(t *testing.T) {
	server := newBackend(t, nil)
	d := newTestDeps(t, server.URL)

	var buf bytes.Buffer
	exitCode := runProfileEdit(context.Background(), d, &buf, nil, noPrompt)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

func TestRunProfileEdit_BackendErrorKeepsUser(t *testing.T) {
	server := newBackend(t, map[string]http.HandlerFunc{
		"PUT /api/users/u1": respond(http.StatusBadRequest, `{"message":"phone number is invalid"}`),
	})
	d := newTestDeps(t, server.URL)
	loggedIn(t, d)

	var buf bytes.Buffer
	exitCode := runProfileEdit(context.Background(), d, &buf, func(p *forms.Profile) { p.Phone = "x" }, noPrompt)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Error: phone number is invalid") {
		t.Errorf("expected backend message, got: %s", buf.String())
	}
	if d.store.RawUser() != aliceUserJSON {
		t.Errorf("expected stored user unchanged, got %s", d.store.RawUser())
	}
}
