// ABOUTME: Start menu shown when market runs without a subcommand on a terminal
// ABOUTME: Offers the main marketplace actions, adjusted to the login state

package menu

import (
	"context"

	"github.com/campusmarket/market-cli/internal/tui/forms"
	"github.com/charmbracelet/huh"
)

// Choice is a selected menu action
type Choice int

const (
	ChoiceBrowse Choice = iota
	ChoiceSignup
	ChoiceProduct
	ChoiceReview
	ChoiceProfile
	ChoiceLogin
	ChoiceLogout
	ChoiceQuit
)

type option struct {
	label string
	value Choice
}

// Menu is the start menu
type Menu struct {
	options  []option
	selected Choice
}

// New creates the menu. Signed-in users get profile editing and logout
// instead of login.
func New(authenticated bool) *Menu {
	options := []option{
		{label: "Browse sellers", value: ChoiceBrowse},
		{label: "Sign up", value: ChoiceSignup},
		{label: "List a product", value: ChoiceProduct},
		{label: "Write a review", value: ChoiceReview},
	}
	if authenticated {
		options = append(options,
			option{label: "Edit profile", value: ChoiceProfile},
			option{label: "Log out", value: ChoiceLogout},
		)
	} else {
		options = append(options, option{label: "Log in with Google", value: ChoiceLogin})
	}
	options = append(options, option{label: "Quit", value: ChoiceQuit})

	return &Menu{options: options, selected: ChoiceBrowse}
}

// Choices lists the offered actions in display order
func (m *Menu) Choices() []Choice {
	choices := make([]Choice, 0, len(m.options))
	for _, opt := range m.options {
		choices = append(choices, opt.value)
	}
	return choices
}

// Run displays the menu and returns the selected action
func (m *Menu) Run(ctx context.Context) (Choice, error) {
	var options []huh.Option[Choice]
	for _, opt := range m.options {
		options = append(options, huh.NewOption(opt.label, opt.value))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Choice]().
				Title("Campus Marketplace").
				Options(options...).
				Value(&m.selected),
		),
	).WithTheme(forms.Theme())

	if err := form.RunWithContext(ctx); err != nil {
		return ChoiceQuit, err
	}
	return m.selected, nil
}

// String returns the string representation of a Choice
func (c Choice) String() string {
	switch c {
	case ChoiceBrowse:
		return "browse"
	case ChoiceSignup:
		return "signup"
	case ChoiceProduct:
		return "product"
	case ChoiceReview:
		return "review"
	case ChoiceProfile:
		return "profile"
	case ChoiceLogin:
		return "login"
	case ChoiceLogout:
		return "logout"
	case ChoiceQuit:
		return "quit"
	default:
		return "unknown"
	}
}
