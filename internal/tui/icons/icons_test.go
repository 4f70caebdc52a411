// ABOUTME: Tests for icon font detection
// ABOUTME: Verifies the environment override and terminal heuristics

package icons

import "testing"

func TestDetectNerdFonts(t *testing.T) {
	tests := []struct {
		name        string
		override    string
		term        string
		termProgram string
		want        bool
	}{
		{"override on", "true", "xterm", "", true},
		{"override off", "0", "xterm-kitty", "", false},
		{"kitty term", "", "xterm-kitty", "", true},
		{"iterm program", "", "xterm-256color", "iTerm.app", true},
		{"plain xterm", "", "xterm-256color", "Apple_Terminal", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("MARKET_NERD_FONTS", tc.override)
			t.Setenv("TERM", tc.term)
			t.Setenv("TERM_PROGRAM", tc.termProgram)

			if got := detectNerdFonts(); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestIconFallback(t *testing.T) {
	icon := Icon{NerdFont: "N", Fallback: "F"}
	got := icon.String()
	if got != "N" && got != "F" {
		t.Errorf("unexpected icon rendering %q", got)
	}
}
