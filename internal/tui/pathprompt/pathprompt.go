// ABOUTME: Go-to prompt for opening an application path in the browser
// ABOUTME: Lists recently viewed sellers and accepts a typed path or URL

package pathprompt

import (
	"strings"

	"github.com/campusmarket/market-cli/internal/tui/recent"
	"github.com/campusmarket/market-cli/internal/tui/icons"
	"github.com/campusmarket/market-cli/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateList state = iota
	stateInput
)

// PathSelectedMsg is sent when the user picks a path to open
type PathSelectedMsg struct {
	Path string
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

// Prompt is the go-to component
type Prompt struct {
	recent    []recent.Seller
	cursor    int
	state     state
	textInput textinput.Model
	err       string
	width     int
}

var (
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent)
	normalStyle   = lipgloss.NewStyle().Foreground(styles.Text)
	dividerStyle  = lipgloss.NewStyle().Foreground(styles.Surface)
)

// New creates a prompt offering the given recent sellers
func New(recentSellers []recent.Seller) *Prompt {
	ti := textinput.New()
	ti.Placeholder = "/sellers/<id>"
	ti.CharLimit = 256
	ti.Width = 60

	p := &Prompt{
		recent:    recentSellers,
		textInput: ti,
	}
	if len(recentSellers) == 0 {
		p.state = stateInput
		p.textInput.Focus()
	}
	return p
}

// Init implements tea.Model
func (p *Prompt) Init() tea.Cmd {
	if p.state == stateInput {
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model
func (p *Prompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil

	case tea.KeyMsg:
		p.err = ""
		if p.state == stateInput {
			return p.updateInput(msg)
		}
		return p.updateList(msg)
	}

	if p.state == stateInput {
		var cmd tea.Cmd
		p.textInput, cmd = p.textInput.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *Prompt) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// recent sellers plus "Enter path..."
	maxItems := len(p.recent) + 1

	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < maxItems-1 {
			p.cursor++
		}
	case "enter":
		if p.cursor < len(p.recent) {
			return p, selected(p.recent[p.cursor].Path())
		}
		p.state = stateInput
		p.textInput.Focus()
		return p, textinput.Blink
	case "esc", "b":
		return p, func() tea.Msg { return CancelledMsg{} }
	}
	return p, nil
}

func (p *Prompt) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if len(p.recent) == 0 {
			return p, func() tea.Msg { return CancelledMsg{} }
		}
		p.state = stateList
		p.textInput.Blur()
		p.textInput.SetValue("")
		return p, nil
	case "enter":
		path := strings.TrimSpace(p.textInput.Value())
		if path == "" {
			p.err = "Please enter a path"
			return p, nil
		}
		return p, selected(path)
	}

	var cmd tea.Cmd
	p.textInput, cmd = p.textInput.Update(msg)
	return p, cmd
}

func selected(path string) tea.Cmd {
	return func() tea.Msg { return PathSelectedMsg{Path: path} }
}

// View implements tea.Model
func (p *Prompt) View() string {
	if p.state == stateInput {
		return p.viewInput()
	}
	return p.viewList()
}

func (p *Prompt) viewList() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(icons.Search.String() + " Go to"))
	b.WriteString("\n")

	var list strings.Builder
	list.WriteString(styles.Subtitle.Render("Recently viewed:"))
	list.WriteString("\n")

	for i, s := range p.recent {
		label := s.Name
		if label == "" {
			label = s.ID
		}
		list.WriteString(p.item(i, label+"  "+styles.LabelStyle.Render(s.Path())))
	}

	dividerWidth := min(40, p.width-8)
	if dividerWidth < 1 {
		dividerWidth = 40
	}
	list.WriteString(dividerStyle.Render(strings.Repeat("─", dividerWidth)))
	list.WriteString("\n")
	list.WriteString(strings.TrimSuffix(p.item(len(p.recent), "Enter path..."), "\n"))

	b.WriteString(styles.Panel.Render(list.String()))
	return b.String()
}

func (p *Prompt) item(idx int, label string) string {
	if idx == p.cursor {
		return "> " + selectedStyle.Render(label) + "\n"
	}
	return "  " + normalStyle.Render(label) + "\n"
}

func (p *Prompt) viewInput() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(icons.Search.String() + " Go to path"))
	b.WriteString("\n")
	b.WriteString(styles.ActivePanel.Render(p.textInput.View()))

	if p.err != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.StatusCritical.Render("Error: " + p.err))
	}
	return b.String()
}
