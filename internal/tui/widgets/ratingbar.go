// ABOUTME: Rating distribution bars for seller reviews
// ABOUTME: Counts reviews per star value and draws one proportional bar per star

package widgets

import (
	"fmt"
	"strings"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/charmbracelet/lipgloss"
)

// RatingCounts holds the number of reviews per star value; index 0 is one star
type RatingCounts [5]int

// CountRatings tallies reviews by rating, ignoring out-of-range values
func CountRatings(reviews []client.Review) RatingCounts {
	var counts RatingCounts
	for _, r := range reviews {
		if r.Rating >= 1 && r.Rating <= 5 {
			counts[r.Rating-1]++
		}
	}
	return counts
}

// Total returns the number of counted reviews
func (c RatingCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// RatingBars draws five lines, five stars first, each bar scaled to the
// most common rating so the longest bar always fills width
func RatingBars(counts RatingCounts, width int) string {
	if width <= 0 {
		width = 20
	}

	peak := 0
	for _, n := range counts {
		if n > peak {
			peak = n
		}
	}

	filledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24"))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))

	lines := make([]string, 0, len(counts))
	for star := 5; star >= 1; star-- {
		n := counts[star-1]
		filled := 0
		if peak > 0 {
			filled = n * width / peak
		}
		bar := filledStyle.Render(strings.Repeat("█", filled)) +
			emptyStyle.Render(strings.Repeat("░", width-filled))
		lines = append(lines, fmt.Sprintf("%d★ %s %d", star, bar, n))
	}
	return strings.Join(lines, "\n")
}
