package unified

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/tui"
)

// pagedSource is the paginated list behaviour the admin controllers share.
type pagedSource[T any] interface {
	State() controller.ListState[T]
	SetSearch(ctx context.Context, term string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	GoToPage(ctx context.Context, n int) error
	Refresh(ctx context.Context) error
}

// pagedList is the table, search box and pagination bar of an admin page.
// Pages embed it and handle their own action keys.
type pagedList[T any] struct {
	ctx       context.Context
	view      View
	title     string
	src       pagedSource[T]
	columns   []tui.Column
	cells     func(T) []string
	shortcuts []tui.ShortcutEntry
	window    int

	keys      tui.PageKeys
	search    textinput.Model
	searching bool
	cursor    int
	width     int
	activeCmd string
}

func newPagedList[T any](ctx context.Context, v View, title string, src pagedSource[T], window int, cols []tui.Column, cells func(T) []string) pagedList[T] {
	s := textinput.New()
	s.Prompt = "/ "
	s.Placeholder = "search"
	s.CharLimit = 100
	s.Width = 40
	return pagedList[T]{
		ctx:     ctx,
		view:    v,
		title:   title,
		src:     src,
		columns: cols,
		cells:   cells,
		window:  window,
		keys:    tui.NewPageKeys(),
		search:  s,
		width:   100,
		shortcuts: []tui.ShortcutEntry{
			{Key: "nav", Label: "↑↓ move"},
			{Key: "page", Label: "←→/1-9 page"},
			{Key: "/", Label: "/ search"},
			{Key: "r", Label: "r refresh"},
		},
	}
}

// selected returns the row under the cursor.
func (l pagedList[T]) selected() (T, bool) {
	var zero T
	items := l.src.State().Items
	if l.cursor < 0 || l.cursor >= len(items) {
		return zero, false
	}
	return items[l.cursor], true
}

func (l pagedList[T]) call(fn func(context.Context) error) tea.Cmd {
	return run(l.ctx, l.view, fn)
}

func (l *pagedList[T]) flash(k string) tea.Cmd {
	l.activeCmd = k
	return tui.HighlightCmd()
}

// update handles the keys every list shares. handled is false when the
// page should look at msg itself.
func (l pagedList[T]) update(msg tea.Msg) (pagedList[T], tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tui.ClearActiveCmdMsg:
		l.activeCmd = ""
		return l, nil, true

	case tea.WindowSizeMsg:
		l.width = max(msg.Width-8, 40)
		return l, nil, false

	case refreshedMsg:
		if msg.view == l.view {
			if n := len(l.src.State().Items); l.cursor >= n {
				l.cursor = max(n-1, 0)
			}
		}
		return l, nil, false

	case tea.KeyMsg:
		if l.searching {
			switch msg.String() {
			case "enter":
				l.searching = false
				l.search.Blur()
				l.cursor = 0
				term := strings.TrimSpace(l.search.Value())
				return l, l.call(func(ctx context.Context) error { return l.src.SetSearch(ctx, term) }), true
			case "esc":
				l.searching = false
				l.search.Blur()
				l.search.SetValue(l.src.State().Search)
				return l, nil, true
			}
			var cmd tea.Cmd
			l.search, cmd = l.search.Update(msg)
			return l, cmd, true
		}

		switch {
		case key.Matches(msg, l.keys.Back):
			return l, navigate(ViewHub), true
		case key.Matches(msg, l.keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
			return l, nil, true
		case key.Matches(msg, l.keys.Down):
			if l.cursor < len(l.src.State().Items)-1 {
				l.cursor++
			}
			return l, nil, true
		case key.Matches(msg, l.keys.Next):
			l.cursor = 0
			hl := l.flash("page")
			return l, tea.Batch(hl, l.call(l.src.NextPage)), true
		case key.Matches(msg, l.keys.Prev):
			l.cursor = 0
			hl := l.flash("page")
			return l, tea.Batch(hl, l.call(l.src.PrevPage)), true
		case key.Matches(msg, l.keys.GoTo):
			n := int(msg.Runes[0] - '0')
			l.cursor = 0
			hl := l.flash("page")
			return l, tea.Batch(hl, l.call(func(ctx context.Context) error { return l.src.GoToPage(ctx, n) })), true
		case key.Matches(msg, l.keys.Refresh):
			hl := l.flash("r")
			return l, tea.Batch(hl, l.call(l.src.Refresh)), true
		case key.Matches(msg, l.keys.Search):
			l.searching = true
			l.search.SetValue(l.src.State().Search)
			cmd := l.search.Focus()
			return l, cmd, true
		}
	}
	return l, nil, false
}

func (l pagedList[T]) render(extra []tui.ShortcutEntry) string {
	s := l.src.State()
	var b strings.Builder

	b.WriteString(tui.StyleHeader.Render(l.title))
	if s.Loading {
		b.WriteString(tui.StyleHelp.Render("  loading…"))
	}
	b.WriteString("\n")
	if l.searching {
		b.WriteString(l.search.View())
		b.WriteString("\n")
	} else if s.Search != "" {
		b.WriteString(tui.StyleHelp.Render("filter: " + s.Search))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tbl := tui.NewTable(l.width, l.columns...)
	b.WriteString(tbl.Header())
	b.WriteString("\n")
	if len(s.Items) == 0 && !s.Loading {
		b.WriteString(tui.StyleHelp.Render("  No records found"))
		b.WriteString("\n")
	}
	for i, it := range s.Items {
		b.WriteString(tbl.Row(l.cells(it), i == l.cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(tui.RenderPagination(s.Pagination, l.window))
	b.WriteString("\n")

	shortcuts := append([]tui.ShortcutEntry{}, l.shortcuts...)
	for i := range shortcuts {
		if shortcuts[i].Key == "page" {
			shortcuts[i].Disabled = !s.Pagination.HasPrev() && !s.Pagination.HasNext()
		}
	}
	shortcuts = append(shortcuts, extra...)
	shortcuts = append(shortcuts, tui.ShortcutEntry{Label: "esc back"})
	inner := lipgloss.NewStyle().Padding(0, 1)
	return tui.RenderWithFooter(inner.Render(b.String()), shortcuts, l.activeCmd)
}
