package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Confirm is a modal yes/no dialog. The command given to Ask runs only when
// the user answers yes.
type Confirm struct {
	title  string
	text   string
	active bool
	onYes  tea.Cmd
}

// Ask opens the dialog.
func (c Confirm) Ask(title, text string, onYes tea.Cmd) Confirm {
	return Confirm{title: title, text: text, active: true, onYes: onYes}
}

// Active reports whether the dialog is waiting for an answer.
func (c Confirm) Active() bool { return c.active }

// Update consumes key presses while the dialog is open.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !c.active {
		return c, nil
	}
	switch strings.ToLower(km.String()) {
	case "y", "enter":
		cmd := c.onYes
		return Confirm{}, cmd
	case "n", "esc", "ctrl+c":
		return Confirm{}, nil
	}
	return c, nil
}

// View renders the dialog box.
func (c Confirm) View() string {
	if !c.active {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleHeader.Render(c.title))
	b.WriteString("\n\n")
	b.WriteString(StyleNormal.Render(c.text))
	b.WriteString("\n\n")
	b.WriteString(StyleHighlight.Render("y") + StyleHelp.Render(" yes   ") +
		StyleHighlight.Render("n") + StyleHelp.Render(" cancel"))
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(ColorYellow).
		Padding(1, 3).
		Render(b.String())
}
