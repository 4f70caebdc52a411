// ABOUTME: Product commands for the market CLI
// ABOUTME: Lists a new product for a seller from flags or an interactive form

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
	productValues      = &forms.Product{}
	productUnavailable bool
	productNoFollow    bool
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage product listings",
}

var productNewCmd = &cobra.Command{
	Use:   "new",
	Short: "List a new product",
	Long: `List a new product for sale.

The seller defaults to the first marketplace user when --seller is not given.
In a terminal, missing fields are asked for interactively. On success the
seller page is shown.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, d *deps) int {
			productValues.Available = !productUnavailable
			opts := formOptions{
				prompt: isInteractive() && productValues.Validate() != nil,
				follow: !productNoFollow,
			}
			return runProductNew(ctx, d, cmd.OutOrStdout(), productValues, opts)
		})
	},
}

func init() {
	productNewCmd.Flags().StringVar(&productValues.Name, "name", "", "Product name")
	productNewCmd.Flags().StringVar(&productValues.Category, "category", "", "Category, e.g. Textbooks or Electronics")
	productNewCmd.Flags().StringVar(&productValues.SellerID, "seller", "", "Seller user ID")
	productNewCmd.Flags().StringVar(&productValues.Description, "description", "", "Description")
	productNewCmd.Flags().StringVar(&productValues.Price, "price", "", "Price in dollars")
	productNewCmd.Flags().StringVar(&productValues.Quantity, "quantity", "1", "Quantity")
	productNewCmd.Flags().StringVar(&productValues.Condition, "condition", "", "Condition, e.g. New or Good")
	productNewCmd.Flags().BoolVar(&productUnavailable, "unavailable", false, "List the product as not available")
	productNewCmd.Flags().BoolVar(&productNoFollow, "no-follow", false, "Do not show the seller page afterwards")
	productCmd.AddCommand(productNewCmd)
	rootCmd.AddCommand(productCmd)
}

// runProductNew creates the listing and returns exit code
func runProductNew(ctx context.Context, d *deps, w io.Writer, values *forms.Product, opts formOptions) int {
	var sellers []client.User
	if opts.prompt || values.SellerID == "" {
		users, err := d.client.GetUsers(ctx)
		if err != nil {
			fmt.Fprintln(w, "Error: Failed to load sellers from API")
			return exitError
		}
		sellers = users
		if values.SellerID == "" {
			values.SellerID = forms.NewProduct(sellers).SellerID
		}
	}

	if err := runForm(ctx, opts, values.Form(sellers)); err != nil {
		return reportFormError(w, err)
	}

	input, err := values.Input()
	if err != nil {
		return reportFormError(w, err)
	}

	product, err := d.client.CreateProduct(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatProductJSON(product))
	} else {
		fmt.Fprintf(w, "Listed %s for $%.2f (%s)\n", product.Name, product.Price, product.ID)
	}

	sellerID := product.SellerID
	if sellerID == "" {
		sellerID = input.SellerID
	}
	return finish(ctx, d, w, opts, sellerPage(sellerID))
}

// formatProductJSON formats a product as JSON
func formatProductJSON(p *client.Product) string {
	data, _ := json.MarshalIndent(p, "", "  ")
	return string(data)
}
