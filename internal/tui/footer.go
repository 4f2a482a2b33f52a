package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// highlightFor is how long a pressed shortcut stays lit in the footer.
const highlightFor = 500 * time.Millisecond

// ClearActiveCmdMsg turns the footer highlight off again.
type ClearActiveCmdMsg struct{}

// ShortcutEntry is one footer label. Key is what a page sets as its active
// command to light the label up; an empty Key never lights.
type ShortcutEntry struct {
	Key      string
	Label    string
	Disabled bool
}

// HighlightCmd schedules the ClearActiveCmdMsg for a shortcut the page has
// just lit.
func HighlightCmd() tea.Cmd {
	return tea.Tick(highlightFor, func(time.Time) tea.Msg {
		return ClearActiveCmdMsg{}
	})
}

var (
	footerDim      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	footerDisabled = lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Strikethrough(true)
	footerSep      = footerDim.Render(" • ")
)

func renderShortcut(sc ShortcutEntry, activeCmd string) string {
	switch {
	case sc.Disabled:
		return footerDisabled.Render(sc.Label)
	case activeCmd != "" && sc.Key == activeCmd:
		return StyleHighlight.Render("[ " + sc.Label + " ]")
	default:
		return footerDim.Render(sc.Label)
	}
}

// RenderFooterBar joins the shortcut labels into one line. With width > 0
// labels that do not fit are dropped from the end and replaced by "…".
func RenderFooterBar(shortcuts []ShortcutEntry, activeCmd string, width int) string {
	parts := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		parts = append(parts, renderShortcut(sc, activeCmd))
	}
	line := strings.Join(parts, footerSep)
	if width > 0 {
		for len(parts) > 1 && ansi.StringWidth(line) > width {
			parts = parts[:len(parts)-1]
			line = strings.Join(parts, footerSep) + footerSep + footerDim.Render("…")
		}
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(line)
}

// RenderWithFooter frames a page body and puts the shortcut bar under it,
// fitted to the body's width.
func RenderWithFooter(body string, shortcuts []ShortcutEntry, activeCmd string) string {
	footer := RenderFooterBar(shortcuts, activeCmd, lipgloss.Width(body))
	return StyleBorder.Render(body + "\n" + footer)
}
