// ABOUTME: Open command for the market CLI
// ABOUTME: Resolves an arbitrary marketplace path, falling back to seller profiles

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/campusmarket/market-cli/internal/resolver"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a marketplace path or link",
	Long: `Open a path such as /sellers/<id> or a full marketplace link.

Any path containing /sellers/<id> shows that seller's profile. Everything else,
including sellers that cannot be fetched, reports page not found (exit code 1).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			return runOpen(ctx, d, cmd.OutOrStdout(), args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}

// openResult is the JSON form of a resolved path
type openResult struct {
	State    string                `json:"state"`
	Path     string                `json:"path"`
	SellerID string                `json:"seller_id,omitempty"`
	Profile  *client.SellerProfile `json:"profile,omitempty"`
}

// runOpen resolves path and returns exit code
func runOpen(ctx context.Context, d *deps, w io.Writer, path string) int {
	result := resolver.New(d.client).Resolve(ctx, path)

	if result.State == resolver.Found {
		if IsJSONOutput() {
			fmt.Fprintln(w, formatOpenJSON(result))
			_ = d.recent.Add(result.Profile.Seller.UserID, result.Profile.Seller.Name)
			return exitOK
		}
		printProfile(d, w, result.Profile)
		return exitOK
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatOpenJSON(result))
	} else {
		fmt.Fprintln(w, formatNotFoundHuman(result.Path))
	}
	return exitNotFound
}

// formatNotFoundHuman formats the not-found page
func formatNotFoundHuman(path string) string {
	return fmt.Sprintf("404: Page not found: %s\nThe page you are looking for does not exist.", path)
}

// formatOpenJSON formats a resolved path as JSON
func formatOpenJSON(result resolver.Result) string {
	data, _ := json.MarshalIndent(openResult{
		State:    result.State.String(),
		Path:     result.Path,
		SellerID: result.SellerID,
		Profile:  result.Profile,
	}, "", "  ")
	return string(data)
}
