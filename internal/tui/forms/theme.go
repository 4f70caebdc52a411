// ABOUTME: Custom huh theme shared by every marketplace form
// ABOUTME: Uses the application palette so forms match the browser views

package forms

import (
	"github.com/campusmarket/market-cli/internal/tui/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme returns the huh theme used by all forms. Focused and blurred fields
// share one layout and differ only in tint and the left rule.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = styles.Title
	t.Group.Description = styles.Subtitle.MarginBottom(1)

	t.Focused = fieldStyles(t.Focused, styles.Primary, lipgloss.ThickBorder())
	t.Focused.Title = t.Focused.Title.Foreground(styles.Accent)
	t.Focused.Option = t.Focused.Option.Foreground(styles.Text)
	t.Focused.TextInput.Text = t.Focused.TextInput.Text.Foreground(styles.Text)

	t.Blurred = fieldStyles(t.Blurred, styles.Muted, lipgloss.HiddenBorder())
	t.Blurred.SelectSelector = t.Blurred.SelectSelector.SetString("  ")
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	return t
}

// fieldStyles paints one field state in tint
func fieldStyles(f huh.FieldStyles, tint lipgloss.Color, rule lipgloss.Border) huh.FieldStyles {
	ink := lipgloss.NewStyle().Foreground(tint)

	f.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(rule).
		BorderLeft(true).
		BorderForeground(tint)
	f.Title = ink.Bold(true)
	f.Description = styles.Subtitle
	f.ErrorIndicator = styles.StatusCritical.SetString(" *")
	f.ErrorMessage = styles.StatusCritical.UnsetBold()

	f.SelectSelector = ink.SetString("> ")
	f.Option = styles.Subtitle
	f.SelectedOption = ink.Bold(true)
	f.NextIndicator = ink.MarginLeft(1).SetString("→")
	f.PrevIndicator = ink.MarginRight(1).SetString("←")

	f.TextInput.Cursor = ink
	f.TextInput.Prompt = ink
	f.TextInput.Placeholder = styles.Subtitle
	f.TextInput.Text = styles.Subtitle

	button := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	f.FocusedButton = button.Foreground(styles.Text).Background(styles.Info)
	f.BlurredButton = button.Foreground(styles.Muted).Background(styles.Surface)

	return f
}
