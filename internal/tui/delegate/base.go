// Package delegate turns a row renderer into a list.ItemDelegate.
package delegate

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc draws one item; selected is true for the row under the cursor.
type RenderFunc func(w io.Writer, item list.Item, selected bool)

// Row is a list.ItemDelegate for single-line rows with no key handling of
// its own.
type Row struct {
	spacing int
	render  RenderFunc
}

// New returns a Row with spacing blank lines between items.
func New(render RenderFunc, spacing int) Row {
	return Row{spacing: max(spacing, 0), render: render}
}

func (Row) Height() int { return 1 }

func (d Row) Spacing() int { return d.spacing }

func (Row) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d Row) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if d.render != nil {
		d.render(w, item, index == m.Index())
	}
}
