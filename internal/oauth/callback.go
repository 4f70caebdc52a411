// ABOUTME: Loopback HTTP server receiving the identity provider redirect
// ABOUTME: Runs the handshake once and hands the result back to the waiting command

package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/campusmarket/market-cli/internal/middleware"
	"github.com/gorilla/mux"
)

// DefaultCallbackAddr is where the loopback server listens by default
const DefaultCallbackAddr = "127.0.0.1:8765"

const (
	successPage = `<!doctype html><html><body><h1>Logged in</h1><p>You can close this window and return to the terminal.</p></body></html>`
	failurePage = `<!doctype html><html><body><h1>Login failed</h1><p>Return to the terminal and run market login again.</p></body></html>`
	usedPage    = `<!doctype html><html><body><h1>Already handled</h1><p>This login link has already been used.</p></body></html>`
)

// CallbackServer serves CallbackPath on a loopback address
type CallbackServer struct {
	handshake *Handshake
	addr      string

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	done     bool
	results  chan Result
}

// NewCallbackServer creates a server that completes h on the first callback
func NewCallbackServer(h *Handshake, addr string) *CallbackServer {
	if addr == "" {
		addr = DefaultCallbackAddr
	}
	return &CallbackServer{
		handshake: h,
		addr:      addr,
		results:   make(chan Result, 1),
	}
}

// Handler returns the routed, logged handler
func (s *CallbackServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(CallbackPath, s.handleCallback).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)
	return middleware.LogRequest(r)
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		w.WriteHeader(http.StatusGone)
		fmt.Fprint(w, usedPage)
		return
	}
	s.done = true
	s.mu.Unlock()

	result := s.handshake.Complete(r.URL.Query())
	s.results <- result

	if result.Err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, failurePage)
		return
	}
	fmt.Fprint(w, successPage)
}

// Start binds the listener and serves in the background
func (s *CallbackServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.listener = ln
	s.server = srv
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Callback server failed", "error", err)
		}
	}()
	slog.Debug("Callback server listening", "addr", ln.Addr().String())
	return nil
}

// URL returns the callback address the identity provider should redirect to
func (s *CallbackServer) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	addr := s.addr
	if s.listener != nil {
		addr = s.listener.Addr().String()
	}
	return "http://" + addr + CallbackPath
}

// Wait blocks until the first callback completes or ctx ends
func (s *CallbackServer) Wait(ctx context.Context) (Result, error) {
	select {
	case result := <-s.results:
		return result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Shutdown stops the server
func (s *CallbackServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
