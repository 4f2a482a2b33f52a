package unified

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/libractl/internal/tui"
	"github.com/blackwell-systems/libractl/internal/tui/delegate"
)

// hubPage is the main menu
type hubPage struct {
	list    list.Model
	context tui.HubContext
	keys    tui.StandardKeys
}

func newHubPage(ctx tui.HubContext) *hubPage {
	menu := tui.MenuItems(ctx.Admin)
	items := make([]list.Item, len(menu))
	for i, it := range menu {
		items[i] = it
	}

	l := list.New(items, delegate.New(tui.RenderMenuItem, 1), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.HelpStyle = tui.StyleHelp

	keys := tui.NewStandardKeys()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select}
	}
	return &hubPage{list: l, context: ctx, keys: keys}
}

func (h *hubPage) Init() tea.Cmd { return nil }

func (h *hubPage) Capturing() bool {
	return h.list.FilterState() == list.Filtering
}

func (h *hubPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if h.Capturing() {
			break
		}
		switch {
		case key.Matches(msg, h.keys.Quit), msg.String() == "esc":
			return h, func() tea.Msg { return QuitAppMsg{} }
		case key.Matches(msg, h.keys.Select):
			if item, ok := h.list.SelectedItem().(tui.MenuItem); ok {
				if item.Key == "quit" {
					return h, func() tea.Msg { return QuitAppMsg{} }
				}
				return h, navigate(View(item.Key))
			}
		}

	case tea.WindowSizeMsg:
		const chrome = 8
		h.list.SetSize(max(msg.Width-12, 40), max(msg.Height-chrome, 5))
	}

	var cmd tea.Cmd
	h.list, cmd = h.list.Update(msg)
	return h, cmd
}

func (h *hubPage) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Padding(0, 1).
		Render("libractl - Library Management")

	parts := []string{header}
	if h.context.UserName != "" {
		role := "member"
		if h.context.Admin {
			role = "admin"
		}
		parts = append(parts, tui.StyleHelp.Render(fmt.Sprintf("  %s <%s> · %s · %s",
			h.context.UserName, h.context.Email, role, h.context.BaseURL)))
	}
	parts = append(parts, h.list.View())

	inner := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return tui.StyleBorder.Render(inner.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
}
