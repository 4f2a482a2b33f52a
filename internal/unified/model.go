package unified

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/tui"
)

// View represents the current active view
type View string

const (
	ViewHub               View = "hub"
	ViewCatalog           View = "catalog"
	ViewLoans             View = "loans"
	ViewAdminBooks        View = "admin-books"
	ViewAdminUsers        View = "admin-users"
	ViewAdminTransactions View = "admin-transactions"
	ViewBorrowings        View = "borrowings"
	ViewStats             View = "stats"
)

// adminViews are only offered to admin sessions.
var adminViews = map[View]bool{
	ViewAdminBooks:        true,
	ViewAdminUsers:        true,
	ViewAdminTransactions: true,
	ViewBorrowings:        true,
	ViewStats:             true,
}

// page is one screen of the unified TUI.
type page interface {
	Init() tea.Cmd
	Update(tea.Msg) (page, tea.Cmd)
	View() string
	// Capturing reports a focused text field, so keys are not navigation.
	Capturing() bool
}

// Controllers are the page controllers the views drive. They are built
// once per program; views come and go around them.
type Controllers struct {
	Dashboard  *controller.DashboardController
	Admin      *controller.AdminController
	Borrowings *controller.BorrowingsController
}

// Options configure the orchestrator.
type Options struct {
	Context    context.Context
	Hub        tui.HubContext
	Now        func() time.Time
	ToastTTL   time.Duration
	PageWindow int
}

// Model is the unified TUI orchestrator that manages view switching
type Model struct {
	ctl     Controllers
	opts    Options
	current View
	page    page
	width   int
	height  int
	toast   tui.Toast
	confirm tui.Confirm
}

// New creates a new unified model starting at the hub
func New(ctl Controllers, opts Options) Model {
	return NewAtView(ctl, opts, ViewHub)
}

// NewAtView creates a unified model starting at a specific view
func NewAtView(ctl Controllers, opts Options, start View) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := Model{ctl: ctl, opts: opts, toast: tui.NewToast(opts.ToastTTL)}
	m.current, m.page = m.open(start)
	return m
}

// Current returns the active view.
func (m Model) Current() View { return m.current }

func (m Model) Init() tea.Cmd {
	return m.page.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Update(msg)
	if _, ok := msg.(tui.ToastMsg); ok {
		return m, toastCmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.updatePage(msg)

	case confirmMsg:
		m.confirm = m.confirm.Ask(msg.title, msg.text, msg.onYes)
		return m, nil

	case tea.KeyMsg:
		if m.confirm.Active() {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		if msg.String() == "ctrl+c" || (msg.String() == "q" && !m.page.Capturing()) {
			return m, tea.Quit
		}
		return m.updatePage(msg)

	case NavigateMsg:
		return m.handleNavigation(msg)

	case QuitAppMsg:
		return m, tea.Quit
	}

	m2, cmd := m.updatePage(msg)
	return m2, tea.Batch(toastCmd, cmd)
}

func (m Model) updatePage(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.page, cmd = m.page.Update(msg)
	return m, cmd
}

func (m Model) handleNavigation(msg NavigateMsg) (tea.Model, tea.Cmd) {
	if adminViews[msg.Target] && !m.opts.Hub.Admin {
		return m, nil
	}
	m.confirm = tui.Confirm{}
	m.current, m.page = m.open(msg.Target)
	cmds := []tea.Cmd{m.page.Init()}
	if m.width > 0 {
		var sizeCmd tea.Cmd
		m.page, sizeCmd = m.page.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		cmds = append(cmds, sizeCmd)
	}
	return m, tea.Batch(cmds...)
}

// open builds the page for v. Unknown views fall back to the hub.
func (m Model) open(v View) (View, page) {
	ctx := m.opts.Context
	switch v {
	case ViewCatalog:
		return v, newDashboardPage(ctx, v, m.ctl.Dashboard, m.opts.Now, false)
	case ViewLoans:
		return v, newDashboardPage(ctx, v, m.ctl.Dashboard, m.opts.Now, true)
	case ViewAdminBooks:
		return v, newAdminBooksPage(ctx, m.ctl.Admin, m.opts.PageWindow)
	case ViewAdminUsers:
		return v, newAdminUsersPage(ctx, m.ctl.Admin, m.opts.PageWindow)
	case ViewAdminTransactions:
		return v, newAdminTransactionsPage(ctx, m.ctl.Admin, m.opts.PageWindow)
	case ViewBorrowings:
		return v, newBorrowingsPage(ctx, m.ctl.Borrowings)
	case ViewStats:
		return v, newStatsPage(ctx, m.ctl.Admin)
	}
	return ViewHub, newHubPage(m.opts.Hub)
}

func (m Model) View() string {
	outer := lipgloss.NewStyle().Padding(1, 2)
	body := m.page.View()
	if m.confirm.Active() {
		if m.width > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
		}
		return outer.Render(m.confirm.View())
	}
	if t := m.toast.View(); t != "" {
		if m.width > 0 {
			t = lipgloss.PlaceHorizontal(m.width-4, lipgloss.Right, t)
		}
		body = lipgloss.JoinVertical(lipgloss.Left, t, body)
	}
	return outer.Render(body)
}
