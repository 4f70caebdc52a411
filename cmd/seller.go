// ABOUTME: Seller command for the market CLI
// ABOUTME: Shows one seller's profile with products, reviews and statistics

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/spf13/cobra"
)

var sellerCmd = &cobra.Command{
	Use:   "seller <id>",
	Short: "Show a seller's profile",
	Long:  `Display a seller's contact details, statistics, product listings and reviews.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			return runSeller(ctx, d, cmd.OutOrStdout(), args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(sellerCmd)
}

// runSeller fetches and prints a seller profile and returns exit code
func runSeller(ctx context.Context, d *deps, w io.Writer, sellerID string) int {
	profile, err := d.client.GetSellerProfile(ctx, sellerID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	printProfile(d, w, profile)
	return exitOK
}

// printProfile writes the profile and records it as recently viewed
func printProfile(d *deps, w io.Writer, profile *client.SellerProfile) {
	if err := d.recent.Add(profile.Seller.UserID, profile.Seller.Name); err != nil {
		slog.Debug("Could not record recent seller", "seller_id", profile.Seller.UserID, "error", err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatProfileJSON(profile))
	} else {
		fmt.Fprintln(w, formatProfileHuman(profile))
	}
}

// formatProfileHuman formats a seller profile for human readability
func formatProfileHuman(p *client.SellerProfile) string {
	var b strings.Builder

	role := p.Seller.Role
	if role == "" {
		role = "member"
	}
	fmt.Fprintf(&b, "%s (%s)\n", p.Seller.Name, role)
	if p.Seller.Email != "" {
		fmt.Fprintf(&b, "Email:    %s\n", p.Seller.Email)
	}
	if phone := p.Seller.PhoneText(); phone != "" {
		fmt.Fprintf(&b, "Contact:  %s\n", phone)
	}
	if merch := p.Seller.MerchText(); merch != "" {
		fmt.Fprintf(&b, "Selling:  %s\n", merch)
	}

	fmt.Fprintf(&b, "\nProducts: %d\nRating:   %.1f\nReviews:  %d\n",
		p.Statistics.TotalProducts, p.Statistics.AverageRating, p.Statistics.TotalReviews)

	b.WriteString("\nProducts\n")
	if len(p.Products) == 0 {
		b.WriteString("  No products listed yet.\n")
	}
	for _, prod := range p.Products {
		b.WriteString(formatProductLine(&prod))
	}

	b.WriteString("\nReviews\n")
	if len(p.Reviews) == 0 {
		b.WriteString("  No reviews yet.\n")
	}
	for _, r := range p.Reviews {
		b.WriteString(formatReviewLine(&r))
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatProductLine(p *client.Product) string {
	availability := "Available"
	if !p.Available() {
		availability = "Sold Out"
	}

	line := fmt.Sprintf("  %s  $%.2f  [%s]  Qty: %d", p.Name, p.Price, availability, p.Quantity)
	if p.Category != "" {
		line += "  " + p.Category
	}
	if p.Condition != nil && *p.Condition != "" {
		line += "  (" + *p.Condition + ")"
	}

	description := "No description provided"
	if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
		description = *p.Description
	}
	return line + "\n    " + description + "\n"
}

func formatReviewLine(r *client.Review) string {
	writer := r.WriterName
	if writer == "" {
		writer = r.WriterID
	}
	comment := r.CommentText()
	if strings.TrimSpace(comment) == "" {
		comment = "No comment provided"
	}
	return fmt.Sprintf("  %d/5  %s\n    %s\n", r.Rating, writer, comment)
}

// formatProfileJSON formats a seller profile as JSON
func formatProfileJSON(p *client.SellerProfile) string {
	data, _ := json.MarshalIndent(p, "", "  ")
	return string(data)
}
