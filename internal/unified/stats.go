package unified

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/tui"
)

// statsPage shows the admin dashboard counters.
type statsPage struct {
	ctx       context.Context
	admin     *controller.AdminController
	keys      tui.PageKeys
	loading   bool
	activeCmd string
}

func newStatsPage(ctx context.Context, admin *controller.AdminController) *statsPage {
	return &statsPage{ctx: ctx, admin: admin, keys: tui.NewPageKeys(), loading: true}
}

func (p *statsPage) fetch() tea.Cmd {
	p.loading = true
	return run(p.ctx, ViewStats, func(ctx context.Context) error {
		return p.admin.SetTab(ctx, controller.AdminDashboard)
	})
}

func (p *statsPage) Init() tea.Cmd { return p.fetch() }

func (p *statsPage) Capturing() bool { return false }

func (p *statsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.ClearActiveCmdMsg:
		p.activeCmd = ""
	case refreshedMsg:
		if msg.view == ViewStats {
			p.loading = false
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Back):
			return p, navigate(ViewHub)
		case key.Matches(msg, p.keys.Refresh):
			p.activeCmd = "r"
			return p, tea.Batch(tui.HighlightCmd(), p.fetch())
		}
	}
	return p, nil
}

func card(label string, n int, color lipgloss.TerminalColor) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		Width(22).
		Render(tui.StyleHelp.Render(label) + "\n" +
			lipgloss.NewStyle().Bold(true).Foreground(color).Render(itoa(n)))
}

func itoa(n int) string { return strconv.Itoa(n) }

func (p *statsPage) View() string {
	s := p.admin.Stats()
	title := tui.StyleHeader.Render("Dashboard")
	if p.loading {
		title += tui.StyleHelp.Render("  loading…")
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total books", s.TotalBooks, tui.ColorCyan),
		card("Total users", s.TotalUsers, tui.ColorTealLight),
		card("Active borrowings", s.ActiveBorrowings, tui.ColorGreen),
		card("Overdue books", s.OverdueBooks, tui.ColorOrange),
	)
	body := lipgloss.NewStyle().Padding(0, 1).Render(title + "\n\n" + cards + "\n")
	return tui.RenderWithFooter(body, []tui.ShortcutEntry{
		{Key: "r", Label: "r refresh"},
		{Label: "esc back"},
	}, p.activeCmd)
}
