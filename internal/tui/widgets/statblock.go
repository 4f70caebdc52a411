// ABOUTME: Compact statistic block widget for seller summaries
// ABOUTME: Draws an icon title in the top border with a value and caption inside

package widgets

import (
	"fmt"
	"strings"

	"github.com/campusmarket/market-cli/internal/tui/icons"
	"github.com/charmbracelet/lipgloss"
)

// StatBlockWidth is the default outer width of a block
const StatBlockWidth = 22

// StatBlock renders a bordered block with the title set into the top border
func StatBlock(icon icons.Icon, title, value, caption string, width int) string {
	if width <= 0 {
		width = StatBlockWidth
	}
	innerWidth := width - 4

	titleText := fmt.Sprintf("%s %s", icon.String(), title)
	if lipgloss.Width(titleText) > innerWidth-1 {
		titleText = title
	}
	titleWidth := lipgloss.Width(titleText)

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB")).Bold(true)
	captionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	// "┌─ " + title + " " + fill + "┐" spans width
	top := borderStyle.Render("┌─ ") + titleStyle.Render(titleText) +
		borderStyle.Render(" "+strings.Repeat("─", max(0, width-5-titleWidth))+"┐")

	line := func(s string) string {
		pad := max(0, innerWidth-lipgloss.Width(s))
		return borderStyle.Render("│ ") + s + strings.Repeat(" ", pad) + borderStyle.Render(" │")
	}

	bottom := borderStyle.Render("└" + strings.Repeat("─", width-2) + "┘")

	return strings.Join([]string{
		top,
		line(valueStyle.Render(value)),
		line(captionStyle.Render(caption)),
		bottom,
	}, "\n")
}
