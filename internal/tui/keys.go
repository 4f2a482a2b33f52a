package tui

import "github.com/charmbracelet/bubbles/key"

// StandardKeys defines common key bindings used across TUI components.
type StandardKeys struct {
	Quit   key.Binding
	Select key.Binding
	Back   key.Binding
	Help   key.Binding
}

// NewStandardKeys creates a standard set of key bindings.
func NewStandardKeys() StandardKeys {
	return StandardKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// PageKeys are the bindings shared by every list page.
type PageKeys struct {
	StandardKeys
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Search  key.Binding
	Refresh key.Binding
	Tab     key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	GoTo    key.Binding
}

// NewPageKeys creates the list page bindings.
func NewPageKeys() PageKeys {
	return PageKeys{
		StandardKeys: NewStandardKeys(),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:         key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→", "next page")),
		Prev:         key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←", "prev page")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Tab:          key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
		Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:       key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		GoTo:         key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "go to page")),
	}
}

// ShortHelp returns a slice of key bindings for the short help view.
func (k PageKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Search, k.Back}
}
