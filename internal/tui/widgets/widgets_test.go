// ABOUTME: Tests for TUI widgets
// ABOUTME: Covers badges, rating distribution and stat block geometry

package widgets

import (
	"strings"
	"testing"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/campusmarket/market-cli/internal/tui/icons"
	"github.com/charmbracelet/lipgloss"
)

func TestAvailabilityBadge(t *testing.T) {
	if got := AvailabilityBadge(&client.Product{Availability: 1}); !strings.Contains(got, "Available") {
		t.Errorf("expected Available badge, got %q", got)
	}
	if got := AvailabilityBadge(&client.Product{Availability: 0}); !strings.Contains(got, "Sold Out") {
		t.Errorf("expected Sold out badge, got %q", got)
	}
}

func TestRoleBadge(t *testing.T) {
	tests := map[string]string{
		"seller": "Seller",
		"buyer":  "Buyer",
		"":       "Member",
	}
	for role, want := range tests {
		if got := RoleBadge(role); !strings.Contains(got, want) {
			t.Errorf("RoleBadge(%q): expected %q in %q", role, want, got)
		}
	}
}

func TestConditionBadge(t *testing.T) {
	if got := ConditionBadge(&client.Product{}); got != "" {
		t.Errorf("expected no badge for unset condition, got %q", got)
	}

	good := "Like New"
	if got := ConditionBadge(&client.Product{Condition: &good}); !strings.Contains(got, "Like New") {
		t.Errorf("expected condition text, got %q", got)
	}
	if ConditionLevel("Like New") != LevelOK {
		t.Error("expected Like New to be OK")
	}
	if ConditionLevel("mint-ish") != LevelNeutral {
		t.Error("expected unknown conditions to be neutral")
	}
}

func TestCountRatings(t *testing.T) {
	reviews := []client.Review{{Rating: 5}, {Rating: 5}, {Rating: 3}, {Rating: 0}, {Rating: 9}}
	counts := CountRatings(reviews)

	if counts[4] != 2 || counts[2] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
	if counts.Total() != 3 {
		t.Errorf("expected out-of-range ratings ignored, total %d", counts.Total())
	}
}

func TestRatingBars(t *testing.T) {
	out := RatingBars(RatingCounts{0, 0, 1, 0, 2}, 10)
	lines := strings.Split(out, "\n")

	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "5★") || !strings.HasPrefix(lines[4], "1★") {
		t.Errorf("expected five stars first: %q", out)
	}
	if strings.Count(lines[0], "█") != 10 {
		t.Errorf("expected peak bar to fill width: %q", lines[0])
	}
	if strings.Count(lines[2], "█") != 5 {
		t.Errorf("expected half bar for 3 stars: %q", lines[2])
	}

	empty := RatingBars(RatingCounts{}, 10)
	if strings.Contains(empty, "█") {
		t.Error("expected empty bars with no reviews")
	}
}

func TestStatBlockWidth(t *testing.T) {
	block := StatBlock(icons.Product, "Products", "12", "listed", 24)
	for i, line := range strings.Split(block, "\n") {
		if w := lipgloss.Width(line); w != 24 {
			t.Errorf("line %d: expected width 24, got %d (%q)", i, w, line)
		}
	}
}
