// ABOUTME: Shared handling for commands that take input from flags or a form
// ABOUTME: Forms run only in a terminal; flags and forms share one validation path

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/campusmarket/market-cli/internal/nav"
	"github.com/charmbracelet/huh"
)

// formOptions controls how a create or edit command gathers input
type formOptions struct {
	// prompt shows the interactive form before submitting
	prompt bool
	// follow renders the page the operation navigates to
	follow bool
}

// errCancelled is returned when the user aborts a form
var errCancelled = errors.New("cancelled")

// runForm shows form when prompting is enabled
func runForm(ctx context.Context, opts formOptions, form *huh.Form) error {
	if !opts.prompt {
		return nil
	}
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errCancelled
		}
		return err
	}
	return nil
}

// reportFormError prints err and returns the matching exit code
func reportFormError(w io.Writer, err error) int {
	if errors.Is(err, errCancelled) {
		fmt.Fprintln(w, "Cancelled.")
		return exitOK
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return exitError
}

// finish follows next unless JSON output or --no-follow asked otherwise.
// The write already succeeded, so a failed follow-up does not change the exit code.
func finish(ctx context.Context, d *deps, w io.Writer, opts formOptions, next nav.Action) int {
	if !opts.follow || IsJSONOutput() {
		return exitOK
	}
	if code := follow(ctx, d, w, next); code != exitOK {
		slog.Debug("Follow-up view failed after write", "action", next.String(), "exit_code", code)
	}
	return exitOK
}

// sellerPage is the navigation target for a seller
func sellerPage(id string) nav.Action {
	return nav.PushTo("/sellers/" + id)
}
