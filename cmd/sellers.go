// ABOUTME: Sellers command for the market CLI
// ABOUTME: Lists marketplace users, optionally with per-seller statistics

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type sellersOptions struct {
	stats       bool
	concurrency int
}

var sellersOpts = sellersOptions{concurrency: 4}

var sellersCmd = &cobra.Command{
	Use:   "sellers",
	Short: "List marketplace sellers",
	Long: `List every marketplace user with what they sell and how to reach them.

With --stats, each seller's profile is fetched to show product and review counts.
A seller whose profile cannot be fetched is still listed without statistics.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			return runSellers(ctx, d, cmd.OutOrStdout(), sellersOpts)
		})
	},
}

func init() {
	sellersCmd.Flags().BoolVar(&sellersOpts.stats, "stats", false, "Fetch product and review statistics for each seller")
	sellersCmd.Flags().IntVar(&sellersOpts.concurrency, "concurrency", 4, "Maximum concurrent profile fetches with --stats")
	rootCmd.AddCommand(sellersCmd)
}

// sellerSummary is one listed seller with optional statistics
type sellerSummary struct {
	client.User
	Statistics *client.SellerStatistics `json:"statistics,omitempty"`
}

// runSellers lists sellers and returns exit code
func runSellers(ctx context.Context, d *deps, w io.Writer, opts sellersOptions) int {
	users, err := d.client.GetUsers(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	summaries := make([]sellerSummary, len(users))
	for i, u := range users {
		summaries[i] = sellerSummary{User: u}
	}

	if opts.stats {
		if err := fetchStatistics(ctx, d.client, summaries, opts.concurrency); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatSellersJSON(summaries))
	} else {
		fmt.Fprintln(w, formatSellersHuman(summaries, opts.stats))
	}
	return exitOK
}

// fetchStatistics fills in statistics with at most limit profile fetches in
// flight. A failed fetch leaves that seller without statistics; only
// cancellation of ctx is returned.
func fetchStatistics(ctx context.Context, c *client.Client, summaries []sellerSummary, limit int) error {
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range summaries {
		g.Go(func() error {
			id := summaries[i].UserID
			profile, err := c.GetSellerProfile(gctx, id)
			if err != nil {
				slog.Warn("Seller statistics unavailable", "seller_id", id, "error", err)
				return nil
			}
			stats := profile.Statistics
			summaries[i].Statistics = &stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// formatSellersHuman formats the seller list as aligned columns
func formatSellersHuman(summaries []sellerSummary, withStats bool) string {
	if len(summaries) == 0 {
		return "No sellers yet."
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	header := "NAME\tSELLING\tCONTACT"
	if withStats {
		header += "\tPRODUCTS\tRATING\tREVIEWS"
	}
	fmt.Fprintln(tw, header+"\tID")

	for _, s := range summaries {
		row := fmt.Sprintf("%s\t%s\t%s", s.Name, orDash(s.MerchText()), orDash(s.PhoneText()))
		if withStats {
			row += "\t" + formatStatColumns(s.Statistics)
		}
		fmt.Fprintln(tw, row+"\t"+s.UserID)
	}

	tw.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func formatStatColumns(stats *client.SellerStatistics) string {
	if stats == nil {
		return "-\t-\t-"
	}
	return fmt.Sprintf("%d\t%.1f\t%d", stats.TotalProducts, stats.AverageRating, stats.TotalReviews)
}

// formatSellersJSON formats the seller list as JSON
func formatSellersJSON(summaries []sellerSummary) string {
	data, _ := json.MarshalIndent(summaries, "", "  ")
	return string(data)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
