// ABOUTME: Tests for the shared form theme
// ABOUTME: Checks that focused and blurred fields keep the same layout

package forms

import (
	"testing"

	"github.com/campusmarket/market-cli/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

func TestTheme_FieldStatesShareLayout(t *testing.T) {
	theme := Theme()

	if theme.Focused.Base.GetPaddingLeft() != theme.Blurred.Base.GetPaddingLeft() {
		t.Error("expected focused and blurred fields to be indented alike")
	}
	if theme.Focused.Base.GetBorderStyle() != lipgloss.ThickBorder() {
		t.Error("expected a thick rule beside the focused field")
	}
	if theme.Blurred.Base.GetBorderStyle() != lipgloss.HiddenBorder() {
		t.Error("expected the blurred rule to be hidden")
	}
	if theme.Focused.Title.GetForeground() != styles.Accent {
		t.Errorf("expected accent focused title, got %v", theme.Focused.Title.GetForeground())
	}
	if theme.Blurred.Title.GetForeground() != styles.Muted {
		t.Errorf("expected muted blurred title, got %v", theme.Blurred.Title.GetForeground())
	}
	if theme.Blurred.SelectSelector.Value() != "  " {
		t.Errorf("expected blank blurred selector, got %q", theme.Blurred.SelectSelector.Value())
	}
}
