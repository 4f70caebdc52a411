// ABOUTME: Signup command for the market CLI
// ABOUTME: Creates a marketplace account from flags or an interactive form

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/campusmarket/market-cli/internal/tui/forms"
	"github.com/spf13/cobra"
)

var (
	signupValues   = forms.NewSignup()
	signupNoFollow bool
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a marketplace account",
	Long: `Create a marketplace account.

In a terminal, missing fields are asked for interactively. Otherwise every
field must be given as a flag. On success the new seller page is shown.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			opts := formOptions{
				prompt: isInteractive() && signupValues.Validate() != nil,
				follow: !signupNoFollow,
			}
			return runSignup(ctx, d, cmd.OutOrStdout(), signupValues, opts)
		})
	},
}

func init() {
	signupCmd.Flags().StringVar(&signupValues.Email, "email", "", "Email address")
	signupCmd.Flags().StringVar(&signupValues.Name, "name", "", "Full name")
	signupCmd.Flags().StringVar(&signupValues.Role, "role", "seller", "Role: seller or buyer")
	signupCmd.Flags().StringVar(&signupValues.Phone, "phone", "", "Phone number")
	signupCmd.Flags().StringVar(&signupValues.Merch, "merch", "", "What you sell")
	signupCmd.Flags().BoolVar(&signupNoFollow, "no-follow", false, "Do not show the seller page afterwards")
	rootCmd.AddCommand(signupCmd)
}

// runSignup creates the account and returns exit code
func runSignup(ctx context.Context, d *deps, w io.Writer, values *forms.Signup, opts formOptions) int {
	if err := runForm(ctx, opts, values.Form()); err != nil {
		return reportFormError(w, err)
	}
	if err := values.Validate(); err != nil {
		return reportFormError(w, err)
	}

	user, err := d.client.CreateUser(ctx, values.Input())
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprintf(w, "Account created for %s (%s)\n", user.Name, user.UserID)
	}

	return finish(ctx, d, w, opts, sellerPage(user.UserID))
}

// formatUserJSON formats a user as JSON
func formatUserJSON(u *client.User) string {
	data, _ := json.MarshalIndent(u, "", "  ")
	return string(data)
}
