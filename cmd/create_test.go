// ABOUTME: Tests for the signup, product and review commands
// ABOUTME: Verifies payloads, validation, backend error text and the follow-up seller page

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/campusmarket/market-cli/internal/tui/forms"
)

var noPrompt = formOptions{prompt: false, follow: false}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		t.Errorf("invalid request body: %v", err)
	}
	return payload
}

func TestRunSignup_CreatesAndFollows(t *testing.T) {
	server := newBackend(t, map[string]http.HandlerFunc{
		"POST /api/users": func(w http.ResponseWriter, r *http.Request) {
			payload := decodeBody(t, r)
			if payload["email"] != "alice@school.edu" || payload["phoneNumber"] != "555-0100" || payload["role"] != "seller" {
				t.Errorf("unexpected payload: %v", payload)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(aliceUserJSON))
		},
		"GET /api/sellers/u1/profile": respond(http.StatusOK, aliceProfileJSON),
	})
	d := newTestDeps(t, server.URL)

	values := forms.NewSignup()
	values.Email = "alice@school.edu"
	values.Name = "Alice"
	values.Phone = "555-0100"
	values.Merch = "books"

	var buf bytes.Buffer
	exitCode := runSignup(context.Background(), d, &buf, values, formOptions{follow: true})

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	output := buf.String()
	if !strings.Contains(output, "Account created for Alice (u1)") {
		t.Errorf("expected confirmation, got: %s", output)
	}
	if !strings.Contains(output, "Calculus Textbook") {
		t.Errorf("expected the new seller page to follow, got: %s", output)
	}
}

func TestRunSignup_FollowFailureKeepsSuccess(t *testing.T) {
	server := newBackend(t, map[string]http.HandlerFunc{
		"POST /api/users":             respond(http.StatusCreated, aliceUserJSON),
		"GET /api/sellers/u1/profile": respond(http.StatusNotFound, `{"message":"Seller not found"}`),
	})
	d := newTestDeps(t, server.URL)

	values := &forms.Signup{Email: "alice@school.edu", Name: "Alice", Role: "seller", Phone: "555-0100", Merch: "books"}

	var buf bytes.Buffer
	exitCode := runSignup(context.Background(), d, &buf, values, formOptions{follow: true})

	if exitCode != 0 {
		t.Errorf("expected exit code 0 after a successful signup, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Account created for Alice (u1)") {
		t.Errorf("expected confirmation, got: %s", buf.String())
	}
}

func TestRunSignup_InvalidInputSkipsBackend(t *testing.T) {
	var calls int32
	server := newBackend(t, map[string]http.HandlerFunc{
		"POST /api/users": func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		},
	})
	d := newTestDeps(t, server.URL)

	values := forms.NewSignup()
	values.Email = "not-an-email"

	var buf bytes.Buffer
	exitCode := runSignup(context.Background(), d, &buf, values, noPrompt)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "enter a valid email address") || !strings.Contains(buf.String(), "name is required") {
		t.Errorf("expected validation errors, got: %s", buf.String())
	}
	if calls != 0 {
		t.Error("expected no backend call for invalid input")
	}
}

func TestRunSignup_BackendMessage(t *testing.T) {
	server := newBackend(t, map[string]http.HandlerFunc{
		"POST /api/users": respond(http.StatusBadRequest, `{"message":"email already registered"}`),
	})
	d := newTestDeps(t, server.URL)

	values := &forms.Signup{Email: "a@b.edu", Name: "A", Role: "buyer", Phone: "1", Merch: "x"}

	var buf bytes.Buffer
	exitCode := runSignup(context.Background(), d, &buf, values, noPrompt)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Error: email already registered") {
		t.Errorf("expected backend message verbatim, got: %s", buf.String())
	}
}

func TestRunSignup_JSONSkipsFollow(t *testing.T) {
	server := newBackend(t, map[string]http.HandlerFunc{
		"POST /api/users": respond(http.StatusCreated, aliceUserJSON),
	})
	d := newTestDeps(t, server.URL)
	jsonOutput = true

	values := &forms.Signup{Email: "alice@school.edu", Name: "Alice", Role: "seller", Phone: "555-0100", Merch: "books"}

	var buf bytes.Buffer
	exitCode := runSignup(context.Background(), d, &buf, values, formOptions{follow: true})

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	var user map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &user); err != nil {
		t.Fatalf("expected a single JSON document, got %v: %s", err, buf.String())
	}
	if user["user_id"] != "u1" {
		t.Errorf("expected created user, got %v", user)
	}
}

func TestRunProductNew_DefaultsToFirstSeller(t *testing.T) {
	server := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/users": respond(http.StatusOK, usersJSON),
		"POST /api/products": func(w http.ResponseWriter, r *http.Request) {
			payload := decodeBody(t, r)
			if payload["seller_id"] != "u1" {
				t.Errorf("expected first seller, got %v", payload["seller_id"])
			}
			if payload["price"] != 45.5 || payload["quantity"] != 2.0 || payload["availability"] != 0.0 {
				t.Errorf("unexpected payload: %v", payload)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"product_id":"p9","product_name":"Calculus Textbook","category":"Textbooks","seller_id":"u1","availability":0,"price":45.5,"quantity":2}`))
		},
	})
	d := newTestDeps(t, server.URL)

	values := &forms.Product{Name: "Calculus Textbook", Category: "Textbooks", Price: "45.50", Quantity: "2"}

	var buf bytes.Buffer
	exitCode := runProductNew(context.Background(), d, &buf, values, noPrompt)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Listed Calculus Textbook for $45.50 (p9)") {
		t.Errorf("expected confirmation, got: %s", buf.String())
	}
}

func TestRunProductNew_ErrorText(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"json message", http.StatusBadRequest, `{"message":"seller not found"}`, "Error: seller not found"},
		{"plain text", http.StatusInternalServerError, "Internal Server Error\n", "Error: Internal Server Error"},
		{"empty body", http.StatusInternalServerError, ``, "Error: Failed to create product"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := newBackend(t, map[string]http.HandlerFunc{
				"POST /api/products": respond(tc.status, tc.body),
			})
			d := newTestDeps(t, server.URL)

			values := &forms.Product{Name: "Lamp", Category: "Other", SellerID: "u1", Price: "5", Quantity: "1", Available: true}

			var buf bytes.Buffer
			exitCode := runProductNew(context.Background(), d, &buf, values, noPrompt)

			if exitCode != 2 {
				t.Errorf("expected exit code 2, got %d", exitCode)
			}
			if strings.TrimSpace(buf.String()) != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, buf.String())
			}
		})
	}
}

func TestRunProductNew_SellersUnavailable(t *testing.T) {
	server := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/users": respond(http.StatusInternalServerError, ``),
	})
	d := newTestDeps(t, server.URL)

	var buf bytes.Buffer
	exitCode := runProductNew(context.Background(), d, &buf, &forms.Product{Name: "Lamp"}, noPrompt)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Error: Failed to load sellers from API") {
		t.Errorf("expected seller loading error, got: %s", buf.String())
	}
}

func TestRunReviewNew_DefaultsAndResult(t *testing.T) {
	server := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/users": respond(http.StatusOK, `[`+aliceUserJSON+`,{"user_id":"u2","name":"Bob","role":"seller"}]`),
		"POST /api/reviews": func(w http.ResponseWriter, r *http.Request) {
			payload := decodeBody(t, r)
			if payload["writer_id"] != "u1" || payload["seller_id"] != "u2" || payload["rating"] != 5.0 {
				t.Errorf("unexpected payload: %v", payload)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"review_id":"r1","writer_id":"u1","seller_id":"u2","rating":5,"comment":"Great"}`))
		},
	})
	d := newTestDeps(t, server.URL)

	var buf bytes.Buffer
	exitCode := runReviewNew(context.Background(), d, &buf, &forms.Review{Rating: 5, Comment: "Great"}, noPrompt)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Review r1 submitted: 5/5 for u2") {
		t.Errorf("expected confirmation, got: %s", buf.String())
	}
}

func TestRunReviewNew_InvalidRating(t *testing.T) {
	server := newBackend(t, nil)
	d := newTestDeps(t, server.URL)

	values := &forms.Review{WriterID: "u1", SellerID: "u2", Rating: 0}

	var buf bytes.Buffer
	exitCode := runReviewNew(context.Background(), d, &buf, values, noPrompt)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "rating must be between 1 and 5") {
		t.Errorf("expected rating error, got: %s", buf.String())
	}
}
