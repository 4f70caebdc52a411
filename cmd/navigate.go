// ABOUTME: Carries out navigation actions returned by session and handshake operations
// ABOUTME: Push renders the target, Reload re-reads the session, External opens a browser

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/campusmarket/market-cli/internal/nav"
	"github.com/pkg/browser"
)

// openBrowser opens url in the user's browser. Tests replace it.
var openBrowser = browser.OpenURL

// follow performs action and returns exit code. A command that receives an
// action calls follow last and does nothing after it.
func follow(ctx context.Context, d *deps, w io.Writer, action nav.Action) int {
	slog.Debug("Following navigation", "action", action.String())

	switch action.Kind {
	case nav.Push:
		if action.Target == nav.Root {
			return runSellers(ctx, d, w, sellersOptions{concurrency: 1})
		}
		fmt.Fprintln(w)
		return runOpen(ctx, d, w, action.Target)
	case nav.Reload:
		d.store.Reload()
		return exitOK
	case nav.External:
		if err := openBrowser(action.Target); err != nil {
			slog.Warn("Could not open browser", "url", action.Target, "error", err)
			fmt.Fprintf(w, "Open this URL in your browser:\n  %s\n", action.Target)
		}
		return exitOK
	default:
		fmt.Fprintf(w, "Error: unknown navigation %s\n", action)
		return exitError
	}
}
