package unified

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/tui"
)

var (
	borrowKey = key.NewBinding(key.WithKeys("b", "enter"), key.WithHelp("b", "borrow"))
	returnKey = key.NewBinding(key.WithKeys("x", "enter"), key.WithHelp("x", "return"))
)

// borrowedMsg reports the outcome of a borrow request.
type borrowedMsg struct{ err error }

// dashboardPage is the member dashboard: the catalog with all and available
// tabs, and the member's loans on the borrowed tab. The loans view opens
// straight on the borrowed tab and stays there.
type dashboardPage struct {
	ctx       context.Context
	view      View
	ctl       *controller.DashboardController
	now       func() time.Time
	loansOnly bool

	keys      tui.PageKeys
	cursor    int
	filter    textinput.Model
	filtering bool
	due       tui.DueDateInput
	borrowing bool
	width     int
	activeCmd string
}

func newDashboardPage(ctx context.Context, v View, ctl *controller.DashboardController, now func() time.Time, loansOnly bool) *dashboardPage {
	f := textinput.New()
	f.Prompt = "/ "
	f.Placeholder = "title, author, ISBN or publisher"
	f.Width = 40
	return &dashboardPage{
		ctx:       ctx,
		view:      v,
		ctl:       ctl,
		now:       now,
		loansOnly: loansOnly,
		keys:      tui.NewPageKeys(),
		filter:    f,
		due:       tui.NewDueDateInput(now(), controller.MaxBorrowDays),
		width:     100,
	}
}

func (p *dashboardPage) Init() tea.Cmd {
	switch {
	case p.loansOnly:
		p.ctl.SetTab(library.TabBorrowed)
	case p.ctl.State().ShowsLoans():
		p.ctl.SetTab(library.TabAll)
	}
	return tea.Batch(
		run(p.ctx, p.view, p.ctl.FetchCatalog),
		run(p.ctx, p.view, p.ctl.FetchLoans),
	)
}

func (p *dashboardPage) Capturing() bool { return p.filtering || p.borrowing }

// visibleBooks applies the local search on top of the tab filter.
func (p *dashboardPage) visibleBooks(s controller.DashboardState) []library.Book {
	return library.BookFilter{Search: strings.TrimSpace(p.filter.Value())}.Apply(s.VisibleBooks())
}

func (p *dashboardPage) rows(s controller.DashboardState) int {
	if s.ShowsLoans() {
		return len(s.Loans)
	}
	return len(p.visibleBooks(s))
}

func (p *dashboardPage) nextTab(tab library.CatalogTab) library.CatalogTab {
	switch tab {
	case library.TabAll:
		return library.TabAvailable
	case library.TabAvailable:
		return library.TabBorrowed
	}
	return library.TabAll
}

func (p *dashboardPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.ClearActiveCmdMsg:
		p.activeCmd = ""
		return p, nil

	case tea.WindowSizeMsg:
		p.width = max(msg.Width-8, 40)
		return p, nil

	case borrowedMsg:
		if msg.err == nil {
			p.borrowing = false
			p.due.Blur()
			p.due.Reset()
		}
		return p, nil

	case refreshedMsg:
		if n := p.rows(p.ctl.State()); p.cursor >= n {
			p.cursor = max(n-1, 0)
		}
		return p, nil

	case tea.KeyMsg:
		if p.borrowing {
			return p.updateBorrow(msg)
		}
		if p.filtering {
			switch msg.String() {
			case "enter", "esc":
				p.filtering = false
				p.filter.Blur()
				if msg.String() == "esc" {
					p.filter.SetValue("")
				}
				p.cursor = 0
				return p, nil
			}
			var cmd tea.Cmd
			p.filter, cmd = p.filter.Update(msg)
			p.cursor = 0
			return p, cmd
		}
		return p.updateKeys(msg)
	}

	if p.borrowing {
		var cmd tea.Cmd
		p.due, cmd = p.due.Update(msg)
		return p, cmd
	}
	if p.filtering {
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *dashboardPage) updateBorrow(msg tea.KeyMsg) (page, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.borrowing = false
		p.due.Blur()
		p.due.Reset()
		p.ctl.Select(0)
		p.ctl.SetDueDate(nil)
		return p, nil
	case "enter":
		p.ctl.SetDueDate(p.due.Value())
		id := p.ctl.State().SelectedID
		ctx, ctl := p.ctx, p.ctl
		return p, func() tea.Msg {
			return borrowedMsg{err: ctl.Borrow(ctx, id)}
		}
	}
	var cmd tea.Cmd
	p.due, cmd = p.due.Update(msg)
	return p, cmd
}

func (p *dashboardPage) updateKeys(msg tea.KeyMsg) (page, tea.Cmd) {
	s := p.ctl.State()
	switch {
	case key.Matches(msg, p.keys.Back):
		return p, navigate(ViewHub)

	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}

	case key.Matches(msg, p.keys.Down):
		if p.cursor < p.rows(s)-1 {
			p.cursor++
		}

	case key.Matches(msg, p.keys.Tab):
		if !p.loansOnly {
			p.ctl.SetTab(p.nextTab(s.Tab))
			p.cursor = 0
		}

	case key.Matches(msg, p.keys.Refresh):
		p.activeCmd = "r"
		return p, tea.Batch(tui.HighlightCmd(), run(p.ctx, p.view, p.ctl.Refresh))

	case key.Matches(msg, p.keys.Search):
		if !s.ShowsLoans() {
			p.filtering = true
			return p, p.filter.Focus()
		}

	case s.ShowsLoans() && key.Matches(msg, returnKey):
		if p.cursor < len(s.Loans) {
			loan := s.Loans[p.cursor]
			title, text := controller.ReturnPrompt(loan)
			ret := run(p.ctx, p.view, func(ctx context.Context) error { return p.ctl.Return(ctx, loan) })
			return p, askConfirm(title, text, ret)
		}

	case !s.ShowsLoans() && key.Matches(msg, borrowKey):
		books := p.visibleBooks(s)
		if p.cursor < len(books) && books[p.cursor].Available() {
			p.ctl.Select(books[p.cursor].ID)
			p.borrowing = true
			return p, p.due.Focus()
		}
	}
	return p, nil
}

func (p *dashboardPage) View() string {
	s := p.ctl.State()
	now := p.now()
	var b strings.Builder

	title := "Library Catalog"
	if p.loansOnly {
		title = "My Loans"
	}
	b.WriteString(tui.StyleHeader.Render(title))
	if s.LoadingBook || s.LoadingLoan || s.Busy {
		b.WriteString(tui.StyleHelp.Render("  loading…"))
	}
	if !s.LastUpdated.IsZero() {
		b.WriteString(tui.StyleHelp.Render("  updated " + s.LastUpdated.Format("03:04 PM")))
	}
	b.WriteString("\n")

	if !p.loansOnly {
		b.WriteString(p.renderTabs(s))
		b.WriteString("\n")
	}
	if n := s.OverdueCount(now); n > 0 {
		b.WriteString(tui.StyleOverdue.Render(fmt.Sprintf("⚠ %d overdue", n)))
		b.WriteString("\n")
	}
	if p.filtering {
		b.WriteString(p.filter.View())
		b.WriteString("\n")
	} else if v := p.filter.Value(); v != "" && !s.ShowsLoans() {
		b.WriteString(tui.StyleHelp.Render("filter: " + v))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var shortcuts []tui.ShortcutEntry
	if s.ShowsLoans() {
		b.WriteString(p.renderLoans(s, now))
		shortcuts = []tui.ShortcutEntry{{Label: "x return"}}
	} else {
		b.WriteString(p.renderBooks(s))
		shortcuts = []tui.ShortcutEntry{{Label: "b borrow"}, {Label: "/ search"}}
	}

	if p.borrowing {
		b.WriteString("\n")
		b.WriteString(tui.StyleHighlight.Render(fmt.Sprintf("Borrow %q", p.selectedTitle(s))))
		b.WriteString("\n")
		b.WriteString(p.due.View())
		b.WriteString(tui.StyleHelp.Render(fmt.Sprintf("  up to %d days · enter confirm · esc cancel", controller.MaxBorrowDays)))
		b.WriteString("\n")
	}

	if !p.loansOnly {
		shortcuts = append(shortcuts, tui.ShortcutEntry{Label: "tab switch"})
	}
	shortcuts = append(shortcuts, tui.ShortcutEntry{Key: "r", Label: "r refresh"}, tui.ShortcutEntry{Label: "esc back"})

	inner := lipgloss.NewStyle().Padding(0, 1)
	return tui.RenderWithFooter(inner.Render(b.String()), shortcuts, p.activeCmd)
}

func (p *dashboardPage) selectedTitle(s controller.DashboardState) string {
	for _, bk := range s.Books {
		if bk.ID == s.SelectedID {
			return bk.Title
		}
	}
	return ""
}

func (p *dashboardPage) renderTabs(s controller.DashboardState) string {
	tabs := []struct {
		tab   library.CatalogTab
		label string
		n     int
	}{
		{library.TabAll, "All", len(s.Books)},
		{library.TabAvailable, "Available", len(library.BookFilter{AvailableOnly: true}.Apply(s.Books))},
		{library.TabBorrowed, "Borrowed", len(s.Loans)},
	}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%s (%d)", t.label, t.n)
		if t.tab == s.Tab {
			parts[i] = tui.StyleHighlight.Render("[" + label + "]")
		} else {
			parts[i] = tui.StyleGenre.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (p *dashboardPage) renderBooks(s controller.DashboardState) string {
	tbl := tui.NewTable(p.width,
		tui.Column{Title: "Title", Weight: 4, Min: 12},
		tui.Column{Title: "Author", Weight: 3, Min: 10},
		tui.Column{Title: "Genre", Weight: 2, Min: 8},
		tui.Column{Title: "Available", Min: 10},
	)
	books := p.visibleBooks(s)
	var b strings.Builder
	b.WriteString(tbl.Header())
	b.WriteString("\n")
	if len(books) == 0 && !s.LoadingBook {
		b.WriteString(tui.StyleHelp.Render("  No books found"))
		b.WriteString("\n")
	}
	for i, bk := range books {
		avail := tui.StyleAvailable.Render(fmt.Sprintf("%d of %d", bk.AvailableCopies, bk.TotalCopies))
		if !bk.Available() {
			avail = tui.StyleDisabled.Render("none")
		}
		b.WriteString(tbl.Row([]string{bk.Title, tui.StyleAuthor.Render(bk.Author), tui.StyleGenre.Render(bk.Genre), avail}, i == p.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (p *dashboardPage) renderLoans(s controller.DashboardState, now time.Time) string {
	tbl := tui.NewTable(p.width,
		tui.Column{Title: "Title", Weight: 4, Min: 12},
		tui.Column{Title: "Author", Weight: 3, Min: 10},
		tui.Column{Title: "Borrowed", Min: 12},
		tui.Column{Title: "Due", Min: 12},
		tui.Column{Title: "Status", Min: 9},
	)
	var b strings.Builder
	b.WriteString(tbl.Header())
	b.WriteString("\n")
	if len(s.Loans) == 0 && !s.LoadingLoan {
		b.WriteString(tui.StyleHelp.Render("  You have no borrowed books"))
		b.WriteString("\n")
	}
	for i, l := range s.Loans {
		status := l.LoanStatus
		if !l.Returned() && library.IsOverdue(l.DueDate, now) {
			status = library.StatusOverdue
		}
		due := library.FormatDate(l.DueDate)
		if status == library.StatusOverdue {
			due = tui.StyleOverdue.Render(due)
		}
		b.WriteString(tbl.Row([]string{
			l.Title,
			tui.StyleAuthor.Render(l.Author),
			library.FormatDate(l.BorrowedAt),
			due,
			tui.StatusStyle(status).Render(library.StatusLabel(status)),
		}, i == p.cursor))
		b.WriteString("\n")
	}
	return b.String()
}
