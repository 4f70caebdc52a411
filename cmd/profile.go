// ABOUTME: Profile commands for the market CLI
// ABOUTME: Shows and edits the logged-in user's account

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/campusmarket/market-cli/internal/session"
	"github.com/campusmarket/market-cli/internal/tui/forms"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your account as the backend sees it",
	Long:  `Fetch the logged-in user's account from the backend using the stored token.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			return runProfileShow(ctx, d, cmd.OutOrStdout())
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your account as the backend sees it",
	Run:   profileCmd.Run,
}

var (
	profileEditFlags = struct {
		name, phone, merch string
	}{}
	profileNoFollow bool
)

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your name, phone number and merch",
	Long: `Edit the logged-in user's profile.

Fields start from the stored account and are overridden by flags. In a
terminal with no flags given, the form is shown. On success your seller page
is shown.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			changed := cmd.Flags().Changed("name") || cmd.Flags().Changed("phone") || cmd.Flags().Changed("merch")
			opts := formOptions{
				prompt: isInteractive() && !changed,
				follow: !profileNoFollow,
			}
			return runProfileEdit(ctx, d, cmd.OutOrStdout(), func(p *forms.Profile) {
				if cmd.Flags().Changed("name") {
					p.Name = profileEditFlags.name
				}
				if cmd.Flags().Changed("phone") {
					p.Phone = profileEditFlags.phone
				}
				if cmd.Flags().Changed("merch") {
					p.Merch = profileEditFlags.merch
				}
			}, opts)
		})
	},
}

func init() {
	profileEditCmd.Flags().StringVar(&profileEditFlags.name, "name", "", "Full name")
	profileEditCmd.Flags().StringVar(&profileEditFlags.phone, "phone", "", "Phone number")
	profileEditCmd.Flags().StringVar(&profileEditFlags.merch, "merch", "", "What you sell: books, electronics, furniture, clothing, sports, other")
	profileEditCmd.Flags().BoolVar(&profileNoFollow, "no-follow", false, "Do not show your seller page afterwards")
	profileCmd.AddCommand(profileShowCmd, profileEditCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfileShow fetches the logged-in user's account and returns exit code
func runProfileShow(ctx context.Context, d *deps, w io.Writer) int {
	if !d.store.Current().Authenticated() {
		fmt.Fprintf(w, "Error: %v. Run 'market login' first.\n", session.ErrNotLoggedIn)
		return exitError
	}

	user, err := d.client.GetProfile(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprintln(w, formatUserHuman(user))
	}
	return exitOK
}

// runProfileEdit updates the logged-in user's profile and returns exit code.
// override applies flag values on top of the stored account.
func runProfileEdit(ctx context.Context, d *deps, w io.Writer, override func(*forms.Profile), opts formOptions) int {
	current := d.store.Current()
	if !current.Authenticated() {
		fmt.Fprintf(w, "Error: %v. Run 'market login' first.\n", session.ErrNotLoggedIn)
		return exitError
	}

	values := forms.NewProfile(current.User)
	if override != nil {
		override(values)
	}

	if err := runForm(ctx, opts, values.Form()); err != nil {
		return reportFormError(w, err)
	}

	input, err := values.Input()
	if err != nil {
		return reportFormError(w, err)
	}

	updated, err := d.client.UpdateUser(ctx, current.User.UserID, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	raw, err := json.Marshal(updated)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	if err := d.store.UpdateUser(string(raw)); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(updated))
	} else {
		fmt.Fprintf(w, "Profile updated for %s\n", updated.Name)
	}

	return finish(ctx, d, w, opts, sellerPage(current.User.UserID))
}

// formatUserHuman formats a user account for human readability
func formatUserHuman(u *client.User) string {
	return fmt.Sprintf(`Name:     %s
Email:    %s
Role:     %s
Contact:  %s
Selling:  %s
User ID:  %s`,
		u.Name,
		orDash(u.Email),
		orDash(u.Role),
		orDash(u.PhoneText()),
		orDash(u.MerchText()),
		u.UserID)
}
