// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent marketplace iconography across terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// nerdFontTerminals commonly ship with a patched font configured
var nerdFontTerminals = []string{"iterm.app", "alacritty", "wezterm", "kitty", "ghostty"}

// detectNerdFonts honours MARKET_NERD_FONTS, then guesses from the terminal
func detectNerdFonts() bool {
	if env := os.Getenv("MARKET_NERD_FONTS"); env != "" {
		switch strings.ToLower(env) {
		case "1", "true", "yes":
			return true
		default:
			return false
		}
	}

	term := strings.ToLower(os.Getenv("TERM") + " " + os.Getenv("TERM_PROGRAM"))
	for _, t := range nerdFontTerminals {
		if strings.Contains(term, t) {
			return true
		}
	}

	// Unicode fallback renders everywhere
	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Marketplace entities
	Store   = Icon{"󰓜", "◈"} // nf-md-storefront
	Seller  = Icon{"󰀄", "●"} // nf-md-account
	Product = Icon{"󰏗", "■"} // nf-md-package_variant
	Review  = Icon{"󰆉", "✎"} // nf-md-comment_text
	Star    = Icon{"󰓎", "★"} // nf-md-star
	Phone   = Icon{"󰏲", "☏"} // nf-md-phone
	Email   = Icon{"󰇮", "@"} // nf-md-email

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Search  = Icon{"󰍉", "⌕"} // nf-md-magnify
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Login   = Icon{"󰍂", "→"} // nf-md-login
	Logout  = Icon{"󰍃", "⇥"} // nf-md-logout
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app
)
