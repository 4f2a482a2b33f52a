package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastKind selects the toast colour.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// ToastMsg asks the program to show a toast.
type ToastMsg struct {
	Kind ToastKind
	Text string
}

type toastExpiredMsg struct{ id int }

// Toast is a transient one-line notification. Each toast hides itself after
// its ttl unless a newer one replaced it first.
type Toast struct {
	ttl     time.Duration
	id      int
	kind    ToastKind
	text    string
	visible bool
}

// NewToast returns a hidden toast that dismisses after ttl.
func NewToast(ttl time.Duration) Toast {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return Toast{ttl: ttl}
}

// Visible reports whether a toast is on screen.
func (t Toast) Visible() bool { return t.visible }

// Text returns the message on screen, or "".
func (t Toast) Text() string {
	if !t.visible {
		return ""
	}
	return t.text
}

// Update handles ToastMsg and the expiry tick; other messages pass through.
func (t Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	switch msg := msg.(type) {
	case ToastMsg:
		t.id++
		t.kind = msg.Kind
		t.text = msg.Text
		t.visible = true
		id := t.id
		return t, tea.Tick(t.ttl, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
	case toastExpiredMsg:
		if msg.id == t.id {
			t.visible = false
		}
	}
	return t, nil
}

// View renders the toast, or "" when hidden.
func (t Toast) View() string {
	if !t.visible {
		return ""
	}
	icon, color := "✓", ColorGreen
	if t.kind == ToastError {
		icon, color = "✗", ColorRed
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(icon + " " + t.text)
}
