// ABOUTME: Browse command and start menu for the market CLI
// ABOUTME: Runs the terminal browser or dispatches the action picked from the menu

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/campusmarket/market-cli/internal/logger"
	"github.com/campusmarket/market-cli/internal/tui"
	"github.com/campusmarket/market-cli/internal/tui/forms"
	"github.com/campusmarket/market-cli/internal/tui/menu"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse [path]",
	Short: "Browse sellers in an interactive terminal UI",
	Long: `Browse marketplace sellers and profiles in a full-screen terminal UI.

An optional path such as /sellers/<id> opens that page first. Logs are
written to debug.log in the config directory while the UI is running.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		startPath := ""
		if len(args) == 1 {
			startPath = args[0]
		}
		run(func(ctx context.Context, d *deps) int {
			return runBrowse(ctx, d, cmd.OutOrStdout(), startPath)
		})
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// runBrowse runs the terminal browser and returns exit code
func runBrowse(ctx context.Context, d *deps, w io.Writer, startPath string) int {
	closer, err := logger.InitFile(d.cfg.ConfigDir, d.cfg.LogLevel, d.cfg.LogFormat)
	if err != nil {
		slog.Warn("Could not open debug log", "error", err)
	} else {
		defer closer.Close()
	}

	if err := tui.Run(ctx, d.client, d.store, d.recent, startPath); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

// runMenu asks what to do and runs it
func runMenu(ctx context.Context, d *deps, w io.Writer) int {
	choice, err := menu.New(d.store.Current().Authenticated()).Run(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		err = errCancelled
	}
	if err != nil {
		return reportFormError(w, err)
	}

	interactive := formOptions{prompt: true, follow: true}

	switch choice {
	case menu.ChoiceBrowse:
		return runBrowse(ctx, d, w, "")
	case menu.ChoiceSignup:
		return runSignup(ctx, d, w, forms.NewSignup(), interactive)
	case menu.ChoiceProduct:
		return runProductNew(ctx, d, w, &forms.Product{Quantity: "1", Available: true}, interactive)
	case menu.ChoiceReview:
		return runReviewNew(ctx, d, w, &forms.Review{Rating: 5}, interactive)
	case menu.ChoiceProfile:
		return runProfileEdit(ctx, d, w, nil, interactive)
	case menu.ChoiceLogin:
		return runLogin(ctx, d, w, false)
	case menu.ChoiceLogout:
		return runLogout(ctx, d, w)
	default:
		return exitOK
	}
}
