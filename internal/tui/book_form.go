package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/blackwell-systems/libractl/internal/library"
)

// BookFormSubmitMsg carries a locally valid form. ID is zero for a new book.
type BookFormSubmitMsg struct {
	ID    int64
	Input library.BookInput
}

// BookFormCancelMsg is sent when the form is dismissed.
type BookFormCancelMsg struct{}

const (
	fieldTitle = iota
	fieldAuthor
	fieldGenre
	fieldPublisher
	fieldISBN
	fieldDescription
	fieldCopies
	fieldCount
)

// bookFields maps each input to its label and the key ozzo reports errors under.
var bookFields = [fieldCount]struct {
	label string
	key   string
}{
	{"Title", "title"},
	{"Author", "author"},
	{"Genre", "genre"},
	{"Publisher", "publisher"},
	{"ISBN", "isbn"},
	{"Summary", "description"},
	{"Copies", "total_copies"},
}

// BookForm is the add/edit book dialog. Errors from local validation are
// shown next to their field and nothing is submitted until they clear.
type BookForm struct {
	inputs    []textinput.Model
	focused   int
	bookID    int64
	title     string
	errs      map[string]string
	activeCmd string
}

// NewBookForm returns an empty add form, or an edit form seeded from b.
func NewBookForm(b *library.Book) BookForm {
	in := library.NewBookInput()
	f := BookForm{
		inputs: make([]textinput.Model, fieldCount),
		title:  "Add Book",
		errs:   map[string]string{},
	}
	if b != nil {
		in = library.InputFromBook(*b)
		f.bookID = b.ID
		f.title = "Edit Book"
	}

	const fieldWidth = 42
	placeholders := [fieldCount]string{"Book title", "Author name", "Fiction", "Publisher", "978-0-00-000000-0", "Short description", "1"}
	values := [fieldCount]string{in.Title, in.Author, in.Genre, in.Publisher, in.ISBN, in.Description, strconv.Itoa(in.TotalCopies)}
	limits := [fieldCount]int{255, 255, 100, 255, 20, 1000, 4}

	for i := range f.inputs {
		t := textinput.New()
		t.Placeholder = placeholders[i]
		t.SetValue(values[i])
		t.CharLimit = limits[i]
		t.Width = fieldWidth
		t.Prompt = "│ "
		f.inputs[i] = t
	}
	f.inputs[fieldCopies].Width = 8
	f.inputs[fieldTitle].Focus()
	return f
}

// Editing reports whether the form edits an existing book.
func (f BookForm) Editing() bool { return f.bookID != 0 }

// Errors returns the inline messages keyed by field.
func (f BookForm) Errors() map[string]string { return f.errs }

func (f BookForm) Init() tea.Cmd {
	return textinput.Blink
}

// Input reads the fields into a trimmed BookInput and validates it.
func (f BookForm) Input() (library.BookInput, error) {
	in := library.BookInput{
		Title:       f.inputs[fieldTitle].Value(),
		Author:      f.inputs[fieldAuthor].Value(),
		Genre:       f.inputs[fieldGenre].Value(),
		Publisher:   f.inputs[fieldPublisher].Value(),
		ISBN:        f.inputs[fieldISBN].Value(),
		Description: f.inputs[fieldDescription].Value(),
	}
	copies := strings.TrimSpace(f.inputs[fieldCopies].Value())
	if copies != "" {
		n, err := strconv.Atoi(copies)
		if err != nil {
			return in, validation.Errors{"total_copies": errors.New("total copies must be a number")}
		}
		in.TotalCopies = n
	}
	in = in.Trimmed()
	return in, in.Validate()
}

func (f BookForm) Update(msg tea.Msg) (BookForm, tea.Cmd) {
	switch msg := msg.(type) {
	case ClearActiveCmdMsg:
		f.activeCmd = ""
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return f, func() tea.Msg { return BookFormCancelMsg{} }

		case "enter":
			in, err := f.Input()
			f.errs = fieldErrors(err)
			if len(f.errs) > 0 {
				f.focusFirstError()
				return f, nil
			}
			id := f.bookID
			f.activeCmd = "enter"
			return f, tea.Batch(HighlightCmd(), func() tea.Msg {
				return BookFormSubmitMsg{ID: id, Input: in}
			})

		case "tab", "shift+tab", "up", "down":
			if msg.String() == "up" || msg.String() == "shift+tab" {
				f.focused--
			} else {
				f.focused++
			}
			if f.focused < 0 {
				f.focused = len(f.inputs) - 1
			} else if f.focused >= len(f.inputs) {
				f.focused = 0
			}
			f.activeCmd = "tab"
			return f, tea.Batch(f.refocus(), HighlightCmd())
		}
	}

	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return f, tea.Batch(cmds...)
}

func (f *BookForm) refocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focused {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *BookForm) focusFirstError() {
	for i, fd := range bookFields {
		if _, bad := f.errs[fd.key]; bad {
			f.focused = i
			f.refocus()
			return
		}
	}
}

// fieldErrors flattens an ozzo-validation result into per-field messages.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		out[bookFields[fieldTitle].key] = err.Error()
		return out
	}
	for k, e := range errs {
		if e != nil {
			out[k] = e.Error()
		}
	}
	return out
}

func (f BookForm) View() string {
	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"})
	formLabel := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(11).
		Align(lipgloss.Right).
		PaddingRight(1)
	formLabelActive := formLabel.
		Foreground(ColorYellow).
		Bold(true)

	const w = 56
	sep := sepStyle.Render(strings.Repeat("─", w))

	var b strings.Builder
	b.WriteString(StyleHeader.Render(f.title))
	if f.Editing() {
		b.WriteString(StyleHelp.Render(fmt.Sprintf("  #%d", f.bookID)))
	}
	b.WriteString("\n")
	b.WriteString(sep)
	b.WriteString("\n\n")

	for i, fd := range bookFields {
		if i == f.focused {
			b.WriteString(formLabelActive.Render("› " + fd.label))
		} else {
			b.WriteString(formLabel.Render(fd.label))
		}
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if msg, bad := f.errs[fd.key]; bad {
			b.WriteString(formLabel.Render(""))
			b.WriteString(StyleError.Render("  " + msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(sep)
	b.WriteString("\n")
	b.WriteString(RenderFooterBar([]ShortcutEntry{
		{Key: "tab", Label: "Tab/↑↓ navigate"},
		{Key: "enter", Label: "enter save"},
		{Key: "", Label: "esc cancel"},
	}, f.activeCmd, 0))

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return StyleBorder.Render(innerPadding.Render(b.String()))
}

// bookFormProgram runs a BookForm on its own outside the unified TUI.
type bookFormProgram struct {
	form     BookForm
	result   *BookFormSubmitMsg
	canceled bool
}

func (m bookFormProgram) Init() tea.Cmd { return m.form.Init() }

func (m bookFormProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BookFormSubmitMsg:
		m.result = &msg
		return m, tea.Quit
	case BookFormCancelMsg:
		m.canceled = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m bookFormProgram) View() string {
	return lipgloss.NewStyle().Padding(2, 4).Render(m.form.View())
}

// RunBookForm launches the book form as a standalone program. b seeds an
// edit; nil starts an empty add form.
func RunBookForm(b *library.Book) (*library.BookInput, error) {
	p := tea.NewProgram(bookFormProgram{form: NewBookForm(b)}, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running form: %w", err)
	}

	fm, ok := finalModel.(bookFormProgram)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if fm.canceled || fm.result == nil {
		return nil, fmt.Errorf("canceled")
	}
	return &fm.result.Input, nil
}
