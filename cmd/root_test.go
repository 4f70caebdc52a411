// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Also holds the mock backend and dependency helpers shared by command tests

package cmd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/campusmarket/market-cli/internal/config"
	"github.com/campusmarket/market-cli/internal/session"
	"github.com/campusmarket/market-cli/internal/tui/recent"
)

const aliceUserJSON = `{"user_id":"u1","email":"alice@school.edu","name":"Alice","role":"seller","phonenumber":"555-0100","merch":"books"}`

const usersJSON = `[` + aliceUserJSON + `]`

const aliceProfileJSON = `{
	"seller": ` + aliceUserJSON + `,
	"products": [
		{"product_id":"p1","product_name":"Calculus Textbook","category":"Textbooks","seller_id":"u1","description":null,"availability":1,"price":45.5,"condition":"Good","quantity":2},
		{"prod_id":"p2","prod_name":"Desk lamp","category":"Dorm Supplies","seller_info":"u1","description":"Bright","availability":0,"price":12,"quantity":1}
	],
	"reviews": [
		{"review_id":"r1","writer_id":"u2","seller_id":"u1","rating":4,"comment":null}
	],
	"statistics": {"totalProducts":2,"averageRating":4,"totalReviews":1}
}`

// newBackend serves routes such as "GET /api/users"; anything else is a 404
func newBackend(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

// newTestDeps wires commands to baseURL with an in-memory session
func newTestDeps(t *testing.T, baseURL string) *deps {
	t.Helper()
	jsonOutput = false
	t.Cleanup(func() { jsonOutput = false })

	dir := t.TempDir()
	store := session.NewStore(session.NewMemoryStorage(), baseURL+client.LoginPath)
	store.Init()

	return &deps{
		cfg: &config.Config{
			APIURL:       baseURL,
			ConfigDir:    dir,
			CallbackAddr: "127.0.0.1:0",
			LoginTimeout: 2 * time.Second,
		},
		store:  store,
		client: client.New(baseURL, store, 5*time.Second),
		recent: recent.New(dir),
	}
}

// loggedIn establishes a session for Alice
func loggedIn(t *testing.T, d *deps) {
	t.Helper()
	if err := d.store.Establish("tok-alice", aliceUserJSON); err != nil {
		t.Fatalf("failed to establish session: %v", err)
	}
}

func TestGetAPIURL_Default(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	apiURL = "" // Reset flag

	url := GetAPIURL()
	if url != client.DefaultBaseURL {
		t.Errorf("expected default URL %s, got %s", client.DefaultBaseURL, url)
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "http://backend.example.com/")
	apiURL = "" // Reset flag

	url := GetAPIURL()
	if url != "http://backend.example.com" {
		t.Errorf("expected http://backend.example.com, got %s", url)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "http://backend.example.com")
	apiURL = "http://flag-override.example.com/"
	defer func() { apiURL = "" }()

	url := GetAPIURL()
	if url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv(config.EnvConfigDir, "/tmp/from-env")
	configDir = ""

	if dir := GetConfigDir(); dir != "/tmp/from-env" {
		t.Errorf("expected env config dir, got %s", dir)
	}

	configDir = "/tmp/from-flag"
	defer func() { configDir = "" }()

	if dir := GetConfigDir(); dir != "/tmp/from-flag" {
		t.Errorf("expected flag to override env, got %s", dir)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, path := range [][]string{
		{"sellers"}, {"seller"}, {"open"}, {"signup"},
		{"product", "new"}, {"review", "new"},
		{"profile", "show"}, {"profile", "edit"},
		{"login"}, {"logout"}, {"whoami"},
		{"auth", "callback"}, {"browse"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil || cmd == rootCmd {
			t.Errorf("expected command %v to be registered", path)
		}
	}
}

func TestRootHelp_TimeoutDefaultMatchesConfig(t *testing.T) {
	t.Setenv(config.EnvHTTPTimeout, "")

	if timeout := config.Load().HTTPTimeout; timeout != 0 {
		t.Fatalf("expected no default request timeout, got %s", timeout)
	}
	if !strings.Contains(rootCmd.Long, "MARKET_HTTP_TIMEOUT    Backend request timeout (default: none)") {
		t.Errorf("expected help to document no default timeout, got:\n%s", rootCmd.Long)
	}
}
