package unified

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/tui"
)

// adminBooksPage lists the catalog for admins with add, edit and delete.
type adminBooksPage struct {
	list  pagedList[library.Book]
	admin *controller.AdminController
	form  *tui.BookForm
}

func newAdminBooksPage(ctx context.Context, admin *controller.AdminController, window int) *adminBooksPage {
	cols := []tui.Column{
		{Title: "Title", Weight: 4, Min: 12},
		{Title: "Author", Weight: 3, Min: 10},
		{Title: "Genre", Weight: 2, Min: 8},
		{Title: "ISBN", Min: 17},
		{Title: "Copies", Min: 7},
	}
	cells := func(b library.Book) []string {
		b = b.WithDefaults()
		copies := fmt.Sprintf("%d/%d", b.AvailableCopies, b.TotalCopies)
		if b.Available() {
			copies = tui.StyleAvailable.Render(copies)
		} else {
			copies = tui.StyleOverdue.Render(copies)
		}
		return []string{b.Title, tui.StyleAuthor.Render(b.Author), tui.StyleGenre.Render(b.Genre), b.ISBN, copies}
	}
	l := newPagedList[library.Book](ctx, ViewAdminBooks, "Manage Books", admin.Books, window, cols, cells)
	return &adminBooksPage{list: l, admin: admin}
}

func (p *adminBooksPage) Init() tea.Cmd {
	return p.list.call(func(ctx context.Context) error {
		return p.admin.SetTab(ctx, controller.AdminBooks)
	})
}

func (p *adminBooksPage) Capturing() bool {
	return p.form != nil || p.list.searching
}

func (p *adminBooksPage) Update(msg tea.Msg) (page, tea.Cmd) {
	books := p.admin.Books

	if p.form != nil {
		switch msg := msg.(type) {
		case tui.BookFormCancelMsg:
			books.CloseModal()
			p.form = nil
			return p, nil
		case tui.BookFormSubmitMsg:
			if msg.ID == 0 {
				return p, p.list.call(func(ctx context.Context) error { return books.Create(ctx, msg.Input) })
			}
			return p, p.list.call(func(ctx context.Context) error { return books.Update(ctx, msg.ID, msg.Input) })
		case refreshedMsg:
			// A successful save closes the modal; a failed one leaves the form up.
			if msg.view == ViewAdminBooks && !books.Modal().Open() {
				p.form = nil
			}
			var cmd tea.Cmd
			p.list, cmd, _ = p.list.update(msg)
			return p, cmd
		case tea.KeyMsg, tui.ClearActiveCmdMsg:
			f, cmd := p.form.Update(msg)
			p.form = &f
			return p, cmd
		}
	}

	var cmd tea.Cmd
	var handled bool
	p.list, cmd, handled = p.list.update(msg)
	if handled {
		return p, cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.form != nil {
			f, fcmd := p.form.Update(msg)
			p.form = &f
			return p, tea.Batch(cmd, fcmd)
		}
		return p, cmd
	}
	switch {
	case key.Matches(km, p.list.keys.Add):
		books.OpenAdd()
		f := tui.NewBookForm(nil)
		p.form = &f
		return p, f.Init()
	case key.Matches(km, p.list.keys.Edit):
		if b, ok := p.list.selected(); ok {
			books.OpenEdit(b)
			f := tui.NewBookForm(&b)
			p.form = &f
			return p, f.Init()
		}
	case key.Matches(km, p.list.keys.Delete):
		if b, ok := p.list.selected(); ok {
			del := p.list.call(func(ctx context.Context) error { return books.Delete(ctx, b) })
			return p, askConfirm("Are you sure?", fmt.Sprintf("Delete %q? You won't be able to revert this!", b.WithDefaults().Title), del)
		}
	}
	return p, cmd
}

func (p *adminBooksPage) View() string {
	if p.form != nil {
		return p.form.View()
	}
	return p.list.render([]tui.ShortcutEntry{
		{Label: "a add"},
		{Label: "e edit"},
		{Label: "d delete"},
	})
}
