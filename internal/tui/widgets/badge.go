// ABOUTME: Inline badge widgets for listing and account status
// ABOUTME: Renders availability, role and condition as colored pills

package widgets

import (
	"strings"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/charmbracelet/lipgloss"
)

// Level selects a badge color
type Level int

const (
	LevelOK Level = iota
	LevelWarning
	LevelCritical
	LevelInfo
	LevelNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored pill
func Badge(text string, level Level) string {
	var bg, fg lipgloss.Color

	switch level {
	case LevelOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case LevelWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case LevelCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case LevelInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// AvailabilityBadge shows whether a listing can still be bought
func AvailabilityBadge(p *client.Product) string {
	if p.Available() {
		return Badge("Available", LevelOK)
	}
	return Badge("Sold Out", LevelCritical)
}

// RoleBadge shows the account role, seller or buyer
func RoleBadge(role string) string {
	switch strings.ToLower(role) {
	case "seller":
		return Badge("Seller", LevelInfo)
	case "":
		return Badge("Member", LevelNeutral)
	default:
		return Badge(strings.ToUpper(role[:1])+role[1:], LevelNeutral)
	}
}

// ConditionLevel maps free-text item conditions onto badge colors
func ConditionLevel(condition string) Level {
	switch strings.ToLower(strings.TrimSpace(condition)) {
	case "new", "like new", "brand new":
		return LevelOK
	case "good", "very good":
		return LevelInfo
	case "fair", "used":
		return LevelWarning
	case "poor", "for parts":
		return LevelCritical
	default:
		return LevelNeutral
	}
}

// ConditionBadge renders the condition, or nothing when unset
func ConditionBadge(p *client.Product) string {
	if p.Condition == nil || strings.TrimSpace(*p.Condition) == "" {
		return ""
	}
	return Badge(*p.Condition, ConditionLevel(*p.Condition))
}
