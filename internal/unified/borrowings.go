package unified

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/tui"
)

var (
	adminReturnKey = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "return"))
	renewKey       = key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "renew"))
)

// borrowingsPage lists every borrowing once and splits it into active and
// history tabs locally.
type borrowingsPage struct {
	ctx context.Context
	ctl *controller.BorrowingsController

	keys      tui.PageKeys
	cursor    int
	filter    textinput.Model
	filtering bool
	width     int
	activeCmd string
}

func newBorrowingsPage(ctx context.Context, ctl *controller.BorrowingsController) *borrowingsPage {
	f := textinput.New()
	f.Prompt = "/ "
	f.Placeholder = "book or borrower"
	f.Width = 40
	return &borrowingsPage{ctx: ctx, ctl: ctl, keys: tui.NewPageKeys(), filter: f, width: 100}
}

func (p *borrowingsPage) Init() tea.Cmd {
	return run(p.ctx, ViewBorrowings, p.ctl.Fetch)
}

func (p *borrowingsPage) Capturing() bool { return p.filtering }

func (p *borrowingsPage) visible() []library.Transaction {
	return library.TransactionFilter{Search: strings.TrimSpace(p.filter.Value())}.Apply(p.ctl.Visible())
}

func (p *borrowingsPage) selected() (library.Transaction, bool) {
	rows := p.visible()
	if p.cursor < 0 || p.cursor >= len(rows) {
		return library.Transaction{}, false
	}
	return rows[p.cursor], true
}

func (p *borrowingsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.ClearActiveCmdMsg:
		p.activeCmd = ""
		return p, nil

	case tea.WindowSizeMsg:
		p.width = max(msg.Width-8, 40)
		return p, nil

	case refreshedMsg:
		if n := len(p.visible()); p.cursor >= n {
			p.cursor = max(n-1, 0)
		}
		return p, nil

	case tea.KeyMsg:
		if p.filtering {
			switch msg.String() {
			case "enter", "esc":
				p.filtering = false
				p.filter.Blur()
				if msg.String() == "esc" {
					p.filter.SetValue("")
				}
				return p, nil
			}
			var cmd tea.Cmd
			p.filter, cmd = p.filter.Update(msg)
			p.cursor = 0
			return p, cmd
		}

		switch {
		case key.Matches(msg, p.keys.Back):
			return p, navigate(ViewHub)
		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.visible())-1 {
				p.cursor++
			}
		case key.Matches(msg, p.keys.Tab):
			if p.ctl.State().Tab == library.TabActive {
				p.ctl.SetTab(library.TabHistory)
			} else {
				p.ctl.SetTab(library.TabActive)
			}
			p.cursor = 0
		case key.Matches(msg, p.keys.Search):
			p.filtering = true
			return p, p.filter.Focus()
		case key.Matches(msg, p.keys.Refresh):
			p.activeCmd = "r"
			return p, tea.Batch(tui.HighlightCmd(), run(p.ctx, ViewBorrowings, p.ctl.Fetch))
		case key.Matches(msg, adminReturnKey):
			if t, ok := p.selected(); ok && t.Active() {
				return p, run(p.ctx, ViewBorrowings, func(ctx context.Context) error { return p.ctl.Return(ctx, t.ID) })
			}
		case key.Matches(msg, renewKey):
			if t, ok := p.selected(); ok && t.Active() {
				return p, run(p.ctx, ViewBorrowings, func(ctx context.Context) error { return p.ctl.Renew(ctx, t.ID) })
			}
		}
		return p, nil
	}

	if p.filtering {
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *borrowingsPage) View() string {
	s := p.ctl.State()
	var b strings.Builder

	b.WriteString(tui.StyleHeader.Render("Borrowings"))
	if s.Loading {
		b.WriteString(tui.StyleHelp.Render("  loading…"))
	}
	b.WriteString("\n")

	active := library.TabActive.Apply(s.All)
	history := library.TabHistory.Apply(s.All)
	tabs := []struct {
		tab   library.BorrowingTab
		label string
		n     int
	}{
		{library.TabActive, "Active", len(active)},
		{library.TabHistory, "History", len(history)},
	}
	for _, t := range tabs {
		label := t.label + " (" + itoa(t.n) + ")"
		if t.tab == s.Tab {
			b.WriteString(tui.StyleHighlight.Render("[" + label + "]"))
		} else {
			b.WriteString(tui.StyleGenre.Render(" " + label + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n")
	if p.filtering {
		b.WriteString(p.filter.View())
		b.WriteString("\n")
	} else if v := p.filter.Value(); v != "" {
		b.WriteString(tui.StyleHelp.Render("filter: " + v))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tbl := tui.NewTable(p.width, transactionColumns()...)
	b.WriteString(tbl.Header())
	b.WriteString("\n")
	rows := p.visible()
	if len(rows) == 0 && !s.Loading {
		b.WriteString(tui.StyleHelp.Render("  No borrowings found"))
		b.WriteString("\n")
	}
	for i, t := range rows {
		b.WriteString(tbl.Row(transactionCells(t), i == p.cursor))
		b.WriteString("\n")
	}

	shortcuts := []tui.ShortcutEntry{
		{Label: "tab switch"},
		{Label: "x return"},
		{Label: "w renew"},
		{Label: "/ search"},
		{Key: "r", Label: "r refresh"},
		{Label: "esc back"},
	}
	inner := lipgloss.NewStyle().Padding(0, 1)
	return tui.RenderWithFooter(inner.Render(b.String()), shortcuts, p.activeCmd)
}
