// ABOUTME: Root bubbletea model for the marketplace browser
// ABOUTME: Manages screen state, backend loads and keyboard routing between views

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/campusmarket/market-cli/internal/nav"
	"github.com/campusmarket/market-cli/internal/resolver"
	"github.com/campusmarket/market-cli/internal/session"
	"github.com/campusmarket/market-cli/internal/tui/icons"
	"github.com/campusmarket/market-cli/internal/tui/pathprompt"
	"github.com/campusmarket/market-cli/internal/tui/recent"
	"github.com/campusmarket/market-cli/internal/tui/styles"
	"github.com/campusmarket/market-cli/internal/tui/views"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenHome Screen = iota
	ScreenSeller
	ScreenGoto
)

// Layout constants
const (
	minTerminalWidth = 60
	frameOverhead    = 4 // header, newline, newline, footer
)

// Backend is the part of the API client the browser reads from
type Backend interface {
	GetUsers(ctx context.Context) ([]client.User, error)
	GetSellerProfile(ctx context.Context, sellerID string) (*client.SellerProfile, error)
}

// Sessions is the part of the session store the browser uses
type Sessions interface {
	Current() session.Session
	Logout() (nav.Action, error)
	Reload()
}

// usersLoadedMsg is sent when the seller list is fetched
type usersLoadedMsg struct {
	users []client.User
	err   error
}

// resolvedMsg is sent when a profile lookup settles; seq ties it to the
// navigation that started it
type resolvedMsg struct {
	seq    int
	result resolver.Result
}

// App is the root model for the TUI
type App struct {
	ctx      context.Context
	backend  Backend
	resolver *resolver.Resolver
	sessions Sessions
	recent   *recent.Sellers

	screen     Screen
	width      int
	height     int
	lastUpdate time.Time

	// Home
	users    []client.User
	usersErr error
	loading  bool
	table    table.Model

	// Seller page
	seq      int
	result   resolver.Result
	spinner  spinner.Model
	viewport viewport.Model

	// Go-to prompt
	prompt *pathprompt.Prompt

	startPath string
	status    string
	statusOK  bool
}

// New creates the browser. recentSellers may be nil.
func New(ctx context.Context, backend Backend, sessions Sessions, recentSellers *recent.Sellers) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	t := table.New(
		table.WithColumns(sellerColumns(minTerminalWidth)),
		table.WithFocused(true),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.BorderForeground(styles.Muted).Bold(true)
	ts.Selected = ts.Selected.Foreground(styles.Text).Background(styles.Primary).Bold(false)
	t.SetStyles(ts)

	return &App{
		ctx:      ctx,
		backend:  backend,
		resolver: resolver.New(backend),
		sessions: sessions,
		recent:   recentSellers,
		screen:   ScreenHome,
		loading:  true,
		table:    t,
		spinner:  s,
		viewport: viewport.New(minTerminalWidth, 10),
	}
}

// StartAt opens path once the browser starts
func (a *App) StartAt(path string) *App {
	a.startPath = path
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.startPath != "" {
		return tea.Batch(a.loadUsers(), a.open(a.startPath))
	}
	return a.loadUsers()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		if a.prompt != nil {
			a.prompt.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.status = ""

		switch a.screen {
		case ScreenHome:
			return a.updateHome(msg)
		case ScreenSeller:
			return a.updateSeller(msg)
		case ScreenGoto:
			return a.updateGoto(msg)
		}

	case usersLoadedMsg:
		a.loading = false
		a.usersErr = msg.err
		if msg.err == nil {
			a.users = msg.users
			a.lastUpdate = time.Now()
		}
		a.table.SetRows(sellerRows(a.users))
		return a, nil

	case resolvedMsg:
		// Results for a page the user already left are dropped
		if msg.seq != a.seq || a.screen != ScreenSeller {
			return a, nil
		}
		a.result = msg.result
		if a.result.State == resolver.Found {
			a.viewport.SetContent(views.SellerProfile(a.result.Profile, a.contentWidth()))
			a.viewport.GotoTop()
			a.remember(a.result.Profile)
		}
		return a, nil

	case spinner.TickMsg:
		if a.screen != ScreenSeller || a.result.State != resolver.Checking {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case pathprompt.PathSelectedMsg:
		a.prompt = nil
		return a, a.open(msg.Path)

	case pathprompt.CancelledMsg:
		a.prompt = nil
		a.screen = ScreenHome
		return a, nil

	default:
		if a.screen == ScreenGoto && a.prompt != nil {
			return a.updateGoto(msg)
		}
	}

	return a, nil
}

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		a.loading = true
		return a, a.loadUsers()
	case "enter":
		if u := a.selectedUser(); u != nil {
			return a, a.open("/sellers/" + u.UserID)
		}
		return a, nil
	case "g", "/":
		return a, a.showGoto()
	case "x":
		if a.sessions != nil && a.sessions.Current().Authenticated() {
			return a, a.logout()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a *App) updateSeller(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b", "esc":
		a.back()
		return a, nil
	case "r":
		return a, a.open(a.result.Path)
	case "g", "/":
		return a, a.showGoto()
	}

	if a.result.State == resolver.Found {
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateGoto(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.prompt == nil {
		return a, nil
	}
	model, cmd := a.prompt.Update(msg)
	a.prompt = model.(*pathprompt.Prompt)
	return a, cmd
}

// back returns home and invalidates any pending lookup
func (a *App) back() {
	a.seq++
	a.screen = ScreenHome
	a.result = resolver.Result{}
}

func (a *App) showGoto() tea.Cmd {
	var list []recent.Seller
	if a.recent != nil {
		list = a.recent.List()
	}
	a.prompt = pathprompt.New(list)
	a.prompt.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	a.screen = ScreenGoto
	return a.prompt.Init()
}

// open navigates to an application path and starts resolving it
func (a *App) open(path string) tea.Cmd {
	a.seq++
	a.screen = ScreenSeller
	a.result = resolver.Pending(path)
	return tea.Batch(a.spinner.Tick, a.resolve(a.seq, path))
}

func (a *App) resolve(seq int, path string) tea.Cmd {
	return func() tea.Msg {
		return resolvedMsg{seq: seq, result: a.resolver.Resolve(a.ctx, path)}
	}
}

func (a *App) loadUsers() tea.Cmd {
	return func() tea.Msg {
		users, err := a.backend.GetUsers(a.ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

// logout clears the session and carries out the reload it asks for
func (a *App) logout() tea.Cmd {
	action, err := a.sessions.Logout()
	if err != nil {
		slog.Error("Logout failed", "error", err)
		a.status, a.statusOK = "Logout failed: "+err.Error(), false
		return nil
	}
	return a.follow(action)
}

// follow carries out a navigation action inside the browser
func (a *App) follow(action nav.Action) tea.Cmd {
	switch action.Kind {
	case nav.Reload:
		a.sessions.Reload()
		a.back()
		a.loading = true
		a.status, a.statusOK = "Logged out", true
		return a.loadUsers()
	case nav.Push:
		if action.Target == nav.Root {
			a.back()
			return nil
		}
		return a.open(action.Target)
	}
	slog.Debug("Navigation not handled in browser", "action", action.String())
	return nil
}

func (a *App) remember(p *client.SellerProfile) {
	if a.recent == nil || p == nil {
		return
	}
	if err := a.recent.Add(p.Seller.UserID, p.Seller.Name); err != nil {
		slog.Debug("Failed to record recent seller", "error", err)
	}
}

func (a *App) selectedUser() *client.User {
	idx := a.table.Cursor()
	if idx < 0 || idx >= len(a.users) {
		return nil
	}
	return &a.users[idx]
}

func (a *App) resize() {
	width := a.contentWidth()
	height := a.contentHeight()

	a.table.SetColumns(sellerColumns(width))
	a.table.SetHeight(max(3, height-3))
	a.table.SetWidth(width)

	a.viewport.Width = width
	a.viewport.Height = max(3, height)
	if a.result.State == resolver.Found {
		a.viewport.SetContent(views.SellerProfile(a.result.Profile, width))
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenSeller:
		content = a.viewSeller()
	case ScreenGoto:
		if a.prompt != nil {
			content = a.prompt.View()
		}
	default:
		content = a.viewHome()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewHome() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Store.String() + " Sellers"))
	sb.WriteString("\n")

	switch {
	case a.loading && len(a.users) == 0:
		sb.WriteString(a.spinner.View() + " Loading sellers...")
	case a.usersErr != nil:
		sb.WriteString(views.ErrorPanel(a.usersErr.Error()))
	case len(a.users) == 0:
		sb.WriteString(styles.Subtitle.Render("No sellers yet."))
	default:
		sb.WriteString(a.table.View())
	}

	if a.status != "" {
		sb.WriteString("\n")
		sb.WriteString(a.renderStatus())
	}
	return sb.String()
}

// renderStatus marks the last action as done or failed
func (a *App) renderStatus() string {
	if a.statusOK {
		return styles.StatusOK.Render(icons.CheckOK.String() + " " + a.status)
	}
	return styles.StatusWarning.Render(icons.Warning.String() + " " + a.status)
}

func (a *App) viewSeller() string {
	switch a.result.State {
	case resolver.Checking:
		return views.Checking(a.spinner.View(), a.result.Path)
	case resolver.Found:
		return a.viewport.View()
	default:
		return views.NotFound(a.result.Path)
	}
}

// frameWidth is the terminal width, clamped so the frame never collapses
func (a *App) frameWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth
	}
	return a.width
}

func (a *App) contentWidth() int {
	return a.frameWidth() - 2
}

func (a *App) contentHeight() int {
	return max(3, a.height-frameOverhead)
}

// renderHeader creates the header bar with app branding and the session
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	userStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	left := fmt.Sprintf(" %s %s ", icons.Store.String(), titleStyle.Render("Campus Marketplace"))

	right := " " + lipgloss.NewStyle().Foreground(styles.Muted).Render("Not logged in") + " "
	if a.sessions != nil {
		if current := a.sessions.Current(); current.Authenticated() {
			right = " " + userStyle.Render(icons.Seller.String()+" "+current.User.Name) + " "
		}
	}

	// "╭─" + left + fill + right + "─╮" spans width
	fill := max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right))
	return borderStyle.Render("╭─") + left + borderStyle.Render(strings.Repeat("─", fill)) + right + borderStyle.Render("─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenHome:
		shortcuts = []string{"↑↓ Navigate", "Enter Open", "g Go to", "r Refresh"}
		if a.sessions != nil && a.sessions.Current().Authenticated() {
			shortcuts = append(shortcuts, "x Logout")
		}
		shortcuts = append(shortcuts, "q Quit")
	case ScreenSeller:
		shortcuts = []string{"↑↓ Scroll", "b Back", "r Refresh", "g Go to", "q Quit"}
	case ScreenGoto:
		shortcuts = []string{"↑↓ Navigate", "Enter Open", "Esc Back"}
	}

	styled := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styled = append(styled, styles.KeyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}
	left := " " + strings.Join(styled, "  ") + " "

	right := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenHome {
		right = " " + statusStyle.Render("Updated "+formatTimeSince(a.lastUpdate)) + " "
	}

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	// Drop the status before the shortcuts when space runs out
	if leftWidth+rightWidth > width-4 {
		right = ""
		rightWidth = 0
	}
	fill := max(0, width-4-leftWidth-rightWidth)

	return borderStyle.Render("╰─") + left + borderStyle.Render(strings.Repeat("─", fill)) + right + borderStyle.Render("─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

func sellerColumns(width int) []table.Column {
	// Name and contact get fixed shares; selling takes the rest
	nameWidth := max(12, width*3/10)
	contactWidth := max(12, width/4)
	sellingWidth := max(10, width-nameWidth-contactWidth-6)

	return []table.Column{
		{Title: views.SellerColumns[0], Width: nameWidth},
		{Title: views.SellerColumns[1], Width: sellingWidth},
		{Title: views.SellerColumns[2], Width: contactWidth},
	}
}

func sellerRows(users []client.User) []table.Row {
	rows := make([]table.Row, 0, len(users))
	for i := range users {
		rows = append(rows, table.Row(views.SellerRow(&users[i])))
	}
	return rows
}

// Run starts the browser, optionally opening startPath first
func Run(ctx context.Context, backend Backend, sessions Sessions, recentSellers *recent.Sellers, startPath string) error {
	app := New(ctx, backend, sessions, recentSellers).StartAt(startPath)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
