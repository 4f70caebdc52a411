// ABOUTME: Login, logout and whoami commands for the market CLI
// ABOUTME: Login runs the OAuth redirect handshake on a loopback callback server

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/campusmarket/market-cli/internal/oauth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

var loginNoBrowser bool

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with Google",
	Long: `Log in through the backend's Google sign-in.

A browser is opened at the backend's login page and a local server waits for
the redirect back. If the browser cannot reach this machine, copy the address
it ends up on and run 'market auth callback <url>'.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			return runLogin(ctx, d, cmd.OutOrStdout(), loginNoBrowser)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			return runLogout(ctx, d, cmd.OutOrStdout())
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Long: `Show the stored session. Token claims are decoded for display only and
are not verified. Exits with code 1 when nobody is logged in.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			return runWhoami(d, cmd.OutOrStdout())
		})
	},
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication helpers",
}

var authCallbackCmd = &cobra.Command{
	Use:   "callback <url>",
	Short: "Complete a login from the redirect address",
	Long: `Complete a login from the address the browser landed on after signing in,
for example http://localhost:3000/auth/google/callback?token=...&user=...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			result := oauth.NewHandshake(d.store).CompleteURL(args[0])
			return completeLogin(ctx, d, cmd.OutOrStdout(), result)
		})
	},
}

func init() {
	loginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "Print the login URL instead of opening a browser")
	authCmd.AddCommand(authCallbackCmd)
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, authCmd)
}

// runLogin waits for the identity provider's redirect and returns exit code
func runLogin(ctx context.Context, d *deps, w io.Writer, noBrowser bool) int {
	srv := oauth.NewCallbackServer(oauth.NewHandshake(d.store), d.cfg.CallbackAddr)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	action := d.store.Login()
	fmt.Fprintf(w, "Waiting for the login redirect on %s\n", srv.URL())
	if noBrowser {
		fmt.Fprintf(w, "Open this URL in your browser:\n  %s\n", action.Target)
	} else {
		follow(ctx, d, w, action)
	}
	fmt.Fprintln(w, "If the browser ends up somewhere else, run: market auth callback '<address>'")

	waitCtx, cancel := context.WithTimeout(ctx, d.cfg.LoginTimeout)
	defer cancel()

	result, err := srv.Wait(waitCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(w, "Error: no login redirect within %s\n", d.cfg.LoginTimeout)
		} else {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
		return exitError
	}

	return completeLogin(ctx, d, w, result)
}

// completeLogin reports a handshake result and returns exit code
func completeLogin(ctx context.Context, d *deps, w io.Writer, result oauth.Result) int {
	if result.Err != nil {
		fmt.Fprintf(w, "Error: login failed: %v\n", result.Err)
		return exitError
	}

	if code := follow(ctx, d, w, result.Next); code != exitOK {
		return code
	}

	current := d.store.Current()
	if !current.Authenticated() {
		fmt.Fprintln(w, "Error: login did not produce a session")
		return exitError
	}
	fmt.Fprintf(w, "Logged in as %s (%s)\n", current.User.Name, current.User.UserID)
	return exitOK
}

// runLogout clears the session and returns exit code
func runLogout(ctx context.Context, d *deps, w io.Writer) int {
	action, err := d.store.Logout()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	fmt.Fprintln(w, "Logged out.")
	return follow(ctx, d, w, action)
}

// whoami is the displayed session
type whoami struct {
	Authenticated bool         `json:"authenticated"`
	User          *client.User `json:"user,omitempty"`
	TokenSubject  string       `json:"token_subject,omitempty"`
	TokenExpires  *time.Time   `json:"token_expires,omitempty"`
}

// runWhoami prints the stored session and returns exit code
func runWhoami(d *deps, w io.Writer) int {
	current := d.store.Current()
	info := whoami{Authenticated: current.Authenticated(), User: current.User}

	if info.Authenticated {
		info.TokenSubject, info.TokenExpires = tokenClaims(current.Token)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(info))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(info, time.Now()))
	}

	if !info.Authenticated {
		return exitNotFound
	}
	return exitOK
}

// tokenClaims reads subject and expiry without verifying the signature.
// Tokens that are not JWTs yield nothing.
func tokenClaims(token string) (string, *time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", nil
	}

	subject, _ := claims.GetSubject()
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return subject, nil
	}
	expires := exp.Time
	return subject, &expires
}

// formatWhoamiHuman formats the session for human readability
func formatWhoamiHuman(info whoami, now time.Time) string {
	if !info.Authenticated {
		return "Not logged in."
	}

	out := fmt.Sprintf("Logged in as %s (%s)\n%s", info.User.Name, info.User.UserID, formatUserHuman(info.User))
	if info.TokenExpires != nil {
		state := "valid"
		if now.After(*info.TokenExpires) {
			state = "expired"
		}
		out += fmt.Sprintf("\nToken:    %s until %s", state, info.TokenExpires.Local().Format(time.RFC1123))
	}
	return out
}

// formatWhoamiJSON formats the session as JSON
func formatWhoamiJSON(info whoami) string {
	data, _ := json.MarshalIndent(info, "", "  ")
	return string(data)
}
