package controller

import (
	"context"
	"sync"

	"github.com/blackwell-systems/libractl/internal/library"
)

// BooksController drives the admin book list: server-side search, paging
// and create/update/delete through a modal.
type BooksController struct {
	*pager[library.Book]

	gw BooksGateway
	d  *Deps

	mu    sync.Mutex
	modal Modal[library.Book]

	// changed runs after every successful mutation.
	changed func(context.Context)
}

// NewBooksController returns a controller with an empty first page.
func NewBooksController(gw BooksGateway, d *Deps) *BooksController {
	return &BooksController{
		pager: newPager[library.Book](d, "books.fetch", "Failed to load books", gw.ListAdminBooks),
		gw:    gw,
		d:     d,
	}
}

// Modal returns the open dialog.
func (c *BooksController) Modal() Modal[library.Book] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

// OpenAdd shows the add form.
func (c *BooksController) OpenAdd() { c.setModal(adding[library.Book]()) }

// OpenEdit shows the edit form for b.
func (c *BooksController) OpenEdit(b library.Book) { c.setModal(editing(b)) }

// OpenDelete shows the delete confirmation for b.
func (c *BooksController) OpenDelete(b library.Book) { c.setModal(confirmingDelete(b)) }

// CloseModal hides any dialog and forgets its target.
func (c *BooksController) CloseModal() { c.setModal(Modal[library.Book]{}) }

func (c *BooksController) setModal(m Modal[library.Book]) {
	c.mu.Lock()
	c.modal = m
	c.mu.Unlock()
}

// Create validates in and adds the book. The list is refetched on success.
func (c *BooksController) Create(ctx context.Context, in library.BookInput) error {
	in = in.Trimmed()
	if err := in.Validate(); err != nil {
		return c.d.reject(validationMessage(err), ErrInvalid)
	}
	if _, err := c.gw.CreateBook(ctx, in); err != nil {
		return c.d.fail("books.create", err, "Failed to add book")
	}
	c.d.success("Book added successfully")
	c.CloseModal()
	c.afterMutation(ctx)
	return nil
}

// Update validates in and saves it over book id.
func (c *BooksController) Update(ctx context.Context, id int64, in library.BookInput) error {
	in = in.Trimmed()
	if err := in.Validate(); err != nil {
		return c.d.reject(validationMessage(err), ErrInvalid)
	}
	if _, err := c.gw.UpdateBook(ctx, id, in); err != nil {
		return c.d.fail("books.update", err, "Failed to update book")
	}
	c.d.success("Book updated successfully")
	c.CloseModal()
	c.afterMutation(ctx)
	return nil
}

// Delete asks for confirmation, then removes b. A declined prompt sends
// nothing. The row is dropped locally before the refetch.
func (c *BooksController) Delete(ctx context.Context, b library.Book) error {
	c.OpenDelete(b)
	defer c.CloseModal()

	if !c.d.confirm("Are you sure?", "You won't be able to revert this!") {
		return ErrDeclined
	}
	if err := c.gw.DeleteBook(ctx, b.ID); err != nil {
		return c.d.fail("books.delete", err, "Failed to delete book")
	}
	c.remove(func(x library.Book) bool { return x.ID == b.ID })
	c.d.success("Book deleted successfully")
	c.afterMutation(ctx)
	return nil
}

func (c *BooksController) afterMutation(ctx context.Context) {
	_ = c.Refresh(ctx)
	if c.changed != nil {
		c.changed(ctx)
	}
}
