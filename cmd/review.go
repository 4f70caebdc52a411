// ABOUTME: Review commands for the market CLI
// ABOUTME: Writes a seller review from flags or an interactive form

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
	reviewValues   = &forms.Review{}
	reviewNoFollow bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Manage seller reviews",
}

var reviewNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Write a review for a seller",
	Long: `Write a review for a seller.

Without --writer and --seller, the first marketplace user writes about the
second. In a terminal, missing fields are asked for interactively. On
success the reviewed seller's page is shown.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			opts := formOptions{
				prompt: isInteractive() && reviewValues.Validate() != nil,
				follow: !reviewNoFollow,
			}
			return runReviewNew(ctx, d, cmd.OutOrStdout(), reviewValues, opts)
		})
	},
}

func init() {
	reviewNewCmd.Flags().StringVar(&reviewValues.WriterID, "writer", "", "Your user ID")
	reviewNewCmd.Flags().StringVar(&reviewValues.SellerID, "seller", "", "Seller user ID")
	reviewNewCmd.Flags().IntVar(&reviewValues.Rating, "rating", 5, "Rating from 1 to 5")
	reviewNewCmd.Flags().StringVar(&reviewValues.Comment, "comment", "", "Comment")
	reviewNewCmd.Flags().BoolVar(&reviewNoFollow, "no-follow", false, "Do not show the seller page afterwards")
	reviewCmd.AddCommand(reviewNewCmd)
	rootCmd.AddCommand(reviewCmd)
}

// runReviewNew creates the review and returns exit code
func runReviewNew(ctx context.Context, d *deps, w io.Writer, values *forms.Review, opts formOptions) int {
	var users []client.User
	if opts.prompt || values.WriterID == "" || values.SellerID == "" {
		loaded, err := d.client.GetUsers(ctx)
		if err != nil {
			fmt.Fprintln(w, "Error: Failed to load users from API")
			return exitError
		}
		users = loaded

		defaults := forms.NewReview(users)
		if values.WriterID == "" {
			values.WriterID = defaults.WriterID
		}
		if values.SellerID == "" {
			values.SellerID = defaults.SellerID
		}
	}

	if err := runForm(ctx, opts, values.Form(users)); err != nil {
		return reportFormError(w, err)
	}

	input, err := values.Input()
	if err != nil {
		return reportFormError(w, err)
	}

	review, err := d.client.CreateReview(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatReviewJSON(review))
	} else {
		fmt.Fprintf(w, "Review %s submitted: %d/5 for %s\n", review.ID, input.Rating, input.SellerID)
	}

	return finish(ctx, d, w, opts, sellerPage(input.SellerID))
}

// formatReviewJSON formats a review as JSON
func formatReviewJSON(r *client.Review) string {
	data, _ := json.MarshalIndent(r, "", "  ")
	return string(data)
}
