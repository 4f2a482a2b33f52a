package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/libractl/internal/library"
)

// ParseDueDate reads a YYYY-MM-DD date as midnight in loc. Empty or
// malformed input yields nil.
func ParseDueDate(s string, loc *time.Location) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(library.DateLayout, s, loc)
	if err != nil {
		return nil
	}
	return &t
}

// DueDateInput is the return date field of the borrow form.
type DueDateInput struct {
	input textinput.Model
	loc   *time.Location
}

// NewDueDateInput returns a blurred field whose placeholder is the latest
// date the gateway accepts.
func NewDueDateInput(now time.Time, maxDays int) DueDateInput {
	t := textinput.New()
	t.Placeholder = now.AddDate(0, 0, maxDays).Format(library.DateLayout)
	t.CharLimit = len(library.DateLayout)
	t.Width = 12
	t.Prompt = "Return by: "
	return DueDateInput{input: t, loc: now.Location()}
}

// Focus starts editing.
func (d *DueDateInput) Focus() tea.Cmd { return d.input.Focus() }

// Blur stops editing.
func (d *DueDateInput) Blur() { d.input.Blur() }

// Focused reports whether the field takes key presses.
func (d DueDateInput) Focused() bool { return d.input.Focused() }

// Reset clears the field.
func (d *DueDateInput) Reset() { d.input.Reset() }

// Raw returns the text as typed.
func (d DueDateInput) Raw() string { return d.input.Value() }

// Value is the parsed date, or nil when the field is empty or malformed.
func (d DueDateInput) Value() *time.Time {
	return ParseDueDate(d.input.Value(), d.loc)
}

// Malformed reports text that is not a YYYY-MM-DD date.
func (d DueDateInput) Malformed() bool {
	return strings.TrimSpace(d.input.Value()) != "" && d.Value() == nil
}

func (d DueDateInput) Update(msg tea.Msg) (DueDateInput, tea.Cmd) {
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d DueDateInput) View() string {
	v := d.input.View()
	if d.Malformed() {
		v += StyleError.Render("  use YYYY-MM-DD")
	}
	return v
}
