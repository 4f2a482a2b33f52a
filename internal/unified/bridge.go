package unified

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/libractl/internal/tui"
)

// Bridge delivers controller notifications to the running program as
// toasts. Messages sent before Attach are dropped.
type Bridge struct {
	mu sync.Mutex
	p  *tea.Program
}

// Attach starts delivering to p.
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	b.p = p
	b.mu.Unlock()
}

func (b *Bridge) send(kind tui.ToastKind, msg string) {
	b.mu.Lock()
	p := b.p
	b.mu.Unlock()
	if p != nil {
		p.Send(tui.ToastMsg{Kind: kind, Text: msg})
	}
}

// Success implements controller.Notifier.
func (b *Bridge) Success(msg string) { b.send(tui.ToastSuccess, msg) }

// Error implements controller.Notifier.
func (b *Bridge) Error(msg string) { b.send(tui.ToastError, msg) }
