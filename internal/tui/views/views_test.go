// ABOUTME: Tests for TUI view renderers
// ABOUTME: Checks seller pages, empty states and the not-found screen

package views

import (
	"strings"
	"testing"

	"github.com/campusmarket/market-cli/internal/client"
)

func strPtr(s string) *string { return &s }

func testProfile() *client.SellerProfile {
	return &client.SellerProfile{
		Seller: client.User{
			UserID:      "u1",
			Name:        "Alice",
			Email:       "alice@school.edu",
			Role:        "seller",
			PhoneNumber: strPtr("555-0100"),
			Merch:       strPtr("books"),
		},
		Products: []client.Product{
			{ID: "p1", Name: "Calculus", Category: "Textbooks", Price: 45, Availability: 1, Quantity: 1, Condition: strPtr("Good")},
			{ID: "p2", Name: "Lamp", Price: 10, Availability: 0, Quantity: 2, Description: strPtr("Desk lamp")},
		},
		Reviews: []client.Review{
			{ID: "r1", WriterName: "Bob", Rating: 5, Comment: strPtr("Great seller"), CreatedAt: "2024-03-01T10:00:00Z"},
			{ID: "r2", WriterID: "u3", Rating: 4},
		},
		Statistics: client.SellerStatistics{TotalProducts: 2, AverageRating: 4.5, TotalReviews: 2},
	}
}

func TestSellerProfile(t *testing.T) {
	for _, width := range []int{80, 120} {
		out := SellerProfile(testProfile(), width)

		for _, want := range []string{
			"Alice", "alice@school.edu", "555-0100", "Sells books",
			"Calculus", "$45.00", "Available", "Sold Out", "Desk lamp", "No description provided",
			"Great seller", "2024-03-01", "u3", "No comment provided",
			"4.5 / 5", "Products (2)", "Reviews (2)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("width %d: expected %q in output", width, want)
			}
		}
	}
}

func TestSellerProfileEmpty(t *testing.T) {
	out := SellerProfile(&client.SellerProfile{Seller: client.User{UserID: "u9", Name: "Nobody"}}, 80)

	if !strings.Contains(out, "No products listed yet.") {
		t.Error("expected empty products message")
	}
	if !strings.Contains(out, "No reviews yet.") {
		t.Error("expected empty reviews message")
	}
	if strings.Contains(out, "1★") {
		t.Error("expected no rating bars without reviews")
	}
}

func TestNotFound(t *testing.T) {
	out := NotFound("/sellers/ghost")
	if !strings.Contains(out, "404") || !strings.Contains(out, "/sellers/ghost") {
		t.Errorf("unexpected not-found view: %q", out)
	}
}

func TestSellerRow(t *testing.T) {
	row := SellerRow(&client.User{Name: "Alice", Merch: strPtr("books")})
	want := []string{"Alice", "books", "-"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %d: expected %q, got %q", i, want[i], row[i])
		}
	}
	if len(row) != len(SellerColumns) {
		t.Errorf("expected %d columns, got %d", len(SellerColumns), len(row))
	}
}

func TestErrorPanel(t *testing.T) {
	if out := ErrorPanel("Failed to fetch seller profile"); !strings.Contains(out, "Failed to fetch seller profile") {
		t.Errorf("expected message in panel: %q", out)
	}
}
