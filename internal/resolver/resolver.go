// ABOUTME: Resolves unmatched paths that may be seller-profile deep links
// ABOUTME: A live profile lookup decides between rendering the seller and a true 404

package resolver

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/campusmarket/market-cli/internal/client"
)

// sellerPath matches the first /sellers/<id> segment anywhere in a path
var sellerPath = regexp.MustCompile(`/sellers/([^/?#]+)`)

// State is the resolver's view state
type State int

const (
	// Checking is shown while a lookup is pending
	Checking State = iota
	// Found means the path is a live seller profile
	Found
	// NotFound means the path does not exist
	NotFound
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// ProfileFetcher is the part of the API client the resolver needs
type ProfileFetcher interface {
	GetSellerProfile(ctx context.Context, sellerID string) (*client.SellerProfile, error)
}

// Result is what the fallback view renders
type Result struct {
	State    State
	Path     string
	SellerID string
	Profile  *client.SellerProfile
}

// Resolver performs the not-found fallback
type Resolver struct {
	profiles ProfileFetcher
}

// New creates a resolver backed by profiles
func New(profiles ProfileFetcher) *Resolver {
	return &Resolver{profiles: profiles}
}

// Match extracts the seller ID from a path or full URL
func Match(path string) (string, bool) {
	if u, err := url.Parse(path); err == nil && u.Path != "" {
		path = u.EscapedPath()
	}
	m := sellerPath.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	id, err := url.PathUnescape(m[1])
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

// Pending returns the initial state for path
func Pending(path string) Result {
	id, _ := Match(path)
	return Result{State: Checking, Path: path, SellerID: id}
}

// Resolve looks the path up. Every lookup failure is reported as NotFound.
func (r *Resolver) Resolve(ctx context.Context, path string) Result {
	id, ok := Match(path)
	if !ok {
		return Result{State: NotFound, Path: path}
	}

	profile, err := r.profiles.GetSellerProfile(ctx, id)
	if err != nil {
		slog.Debug("Seller lookup failed, treating as not found", "seller_id", id, "error", err)
		return Result{State: NotFound, Path: path, SellerID: id}
	}
	return Result{State: Found, Path: path, SellerID: id, Profile: profile}
}
