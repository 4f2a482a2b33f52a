package controller_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/libractl/internal/api"
	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/library"
)

func TestBooks_EnvelopeOfThree(t *testing.T) {
	h := newHarness(true)
	h.gw.books = envelope(threeBooks(), 1, 1)
	c := controller.NewBooksController(h.gw, h.deps)

	require.NoError(t, c.Fetch(context.Background(), 0, ""))

	s := c.State()
	assert.Len(t, s.Items, 3)
	assert.False(t, s.Pagination.HasPrev(), "Prev should be disabled")
	assert.False(t, s.Pagination.HasNext(), "Next should be disabled")
	assert.False(t, s.Loading)
	assert.Equal(t, 1, h.gw.lastParams.Page, "page should default to 1")
	assert.Equal(t, "", h.gw.lastParams.Search)
}

func TestBooks_FetchFailureEmptiesList(t *testing.T) {
	h := newHarness(true)
	h.gw.books = envelope(threeBooks(), 1, 1)
	c := controller.NewBooksController(h.gw, h.deps)
	require.NoError(t, c.Fetch(context.Background(), 1, ""))
	require.Len(t, c.State().Items, 3)

	h.gw.booksErr = &api.APIError{Status: 500}
	err := c.Fetch(context.Background(), 1, "")
	require.Error(t, err)

	s := c.State()
	assert.Empty(t, s.Items, "failed fetch must not leave stale rows")
	assert.NotNil(t, s.Items)
	assert.False(t, s.Loading, "loading must be cleared on failure")
	assert.Equal(t, "Failed to load books", h.notes.lastError())
}

func TestBooks_FetchFailureUsesServerMessage(t *testing.T) {
	h := newHarness(true)
	h.gw.booksErr = &api.APIError{Status: 403, Message: "Admins only"}
	c := controller.NewBooksController(h.gw, h.deps)

	err := c.Fetch(context.Background(), 1, "")
	var f *controller.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "Admins only", f.Message)
	assert.ErrorIs(t, err, api.ErrForbidden)
	assert.Equal(t, "Admins only", h.notes.lastError())
}

func TestBooks_SetSearchResetsToFirstPage(t *testing.T) {
	h := newHarness(true)
	h.gw.books = envelope(threeBooks(), 2, 3)
	c := controller.NewBooksController(h.gw, h.deps)
	require.NoError(t, c.Fetch(context.Background(), 2, ""))

	require.NoError(t, c.SetSearch(context.Background(), "dune"))
	assert.Equal(t, 1, h.gw.lastParams.Page)
	assert.Equal(t, "dune", h.gw.lastParams.Search)
	assert.Equal(t, "dune", c.State().Search)
}

func TestBooks_PagingBoundaries(t *testing.T) {
	h := newHarness(true)
	h.gw.books = envelope(threeBooks(), 1, 2)
	c := controller.NewBooksController(h.gw, h.deps)
	require.NoError(t, c.Fetch(context.Background(), 1, "x"))
	calls := h.gw.count("ListAdminBooks")

	require.NoError(t, c.PrevPage(context.Background()))
	assert.Equal(t, calls, h.gw.count("ListAdminBooks"), "PrevPage on page 1 must not fetch")

	h.gw.books = envelope(threeBooks(), 2, 2)
	require.NoError(t, c.NextPage(context.Background()))
	assert.Equal(t, 2, h.gw.lastParams.Page)
	assert.Equal(t, "x", h.gw.lastParams.Search, "paging keeps the search term")

	calls = h.gw.count("ListAdminBooks")
	require.NoError(t, c.NextPage(context.Background()))
	assert.Equal(t, calls, h.gw.count("ListAdminBooks"), "NextPage on last page must not fetch")

	require.NoError(t, c.GoToPage(context.Background(), 7))
	assert.Equal(t, 2, h.gw.lastParams.Page, "GoToPage clamps to last page")
}

func TestBooks_StaleResponseDropped(t *testing.T) {
	h := newHarness(true)
	c := controller.NewBooksController(h.gw, h.deps)

	release := make(chan struct{})
	entered := make(chan struct{})
	h.gw.onList = func(p api.ListParams) (api.ListResult[library.Book], error) {
		if p.Search == "d" {
			close(entered)
			<-release
			return envelope([]library.Book{{ID: 1, Title: "old"}}, 1, 1), nil
		}
		return envelope([]library.Book{{ID: 2, Title: "Dune"}}, 1, 1), nil
	}

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowErr = c.SetSearch(context.Background(), "d")
	}()
	<-entered

	require.NoError(t, c.SetSearch(context.Background(), "dune"))
	close(release)
	wg.Wait()

	assert.ErrorIs(t, slowErr, controller.ErrStale)
	s := c.State()
	require.Len(t, s.Items, 1)
	assert.Equal(t, "Dune", s.Items[0].Title, "older response must not overwrite newer")
	assert.Equal(t, "dune", s.Search)
	assert.False(t, s.Loading)
}

func TestBooks_CreateValidatesLocally(t *testing.T) {
	h := newHarness(true)
	c := controller.NewBooksController(h.gw, h.deps)
	c.OpenAdd()

	err := c.Create(context.Background(), library.BookInput{Title: "  ", TotalCopies: 1})
	assert.ErrorIs(t, err, controller.ErrInvalid)
	assert.Equal(t, 0, h.gw.total(), "invalid input must not reach the gateway")
	assert.Equal(t, "author is required", h.notes.lastError())
	assert.Equal(t, controller.Adding, c.Modal().Kind, "form stays open on validation failure")
}

func TestBooks_CreateRefetchesAndCloses(t *testing.T) {
	h := newHarness(true)
	h.gw.books = envelope(threeBooks(), 1, 1)
	c := controller.NewBooksController(h.gw, h.deps)
	c.OpenAdd()

	require.NoError(t, c.Create(context.Background(), library.BookInput{Title: "Dune", Author: "Herbert", TotalCopies: 2}))
	assert.Equal(t, 1, h.gw.count("CreateBook"))
	assert.Equal(t, 1, h.gw.count("ListAdminBooks"), "create refetches the list")
	assert.Equal(t, "Book added successfully", h.notes.lastSuccess())
	assert.False(t, c.Modal().Open())
}

func TestBooks_CreateFailureKeepsModal(t *testing.T) {
	h := newHarness(true)
	h.gw.mutErr = &api.APIError{Status: 422, Message: "The isbn has already been taken."}
	c := controller.NewBooksController(h.gw, h.deps)
	c.OpenAdd()

	err := c.Create(context.Background(), library.BookInput{Title: "Dune", Author: "Herbert", TotalCopies: 2})
	assert.ErrorIs(t, err, api.ErrValidation)
	assert.Equal(t, "The isbn has already been taken.", h.notes.lastError())
	assert.Equal(t, controller.Adding, c.Modal().Kind)
}

func TestBooks_EditModalCarriesTarget(t *testing.T) {
	h := newHarness(true)
	c := controller.NewBooksController(h.gw, h.deps)
	b := threeBooks()[0]

	c.OpenEdit(b)
	m := c.Modal()
	assert.Equal(t, controller.Editing, m.Kind)
	assert.Equal(t, b.ID, m.Target.ID)

	c.OpenAdd()
	assert.Equal(t, int64(0), c.Modal().Target.ID, "add modal must not keep an edit target")

	c.OpenEdit(b)
	c.CloseModal()
	assert.Equal(t, controller.Modal[library.Book]{}, c.Modal())
}

func TestBooks_UpdateFallbackMessage(t *testing.T) {
	h := newHarness(true)
	h.gw.mutErr = errors.New("connection reset")
	c := controller.NewBooksController(h.gw, h.deps)

	err := c.Update(context.Background(), 4, library.BookInput{Title: "T", Author: "A", TotalCopies: 1})
	require.Error(t, err)
	assert.Equal(t, "Failed to update book", h.notes.lastError())
	assert.Equal(t, 0, h.gw.count("ListAdminBooks"), "no refetch after failed update")
}

func TestBooks_DeleteDeclined(t *testing.T) {
	h := newHarness(false)
	h.gw.books = envelope(threeBooks(), 1, 1)
	c := controller.NewBooksController(h.gw, h.deps)
	require.NoError(t, c.Fetch(context.Background(), 1, ""))

	err := c.Delete(context.Background(), threeBooks()[1])
	assert.ErrorIs(t, err, controller.ErrDeclined)
	assert.Equal(t, 0, h.gw.count("DeleteBook"), "declined delete must not call the gateway")
	assert.Len(t, c.State().Items, 3)
	assert.Len(t, h.prompt.asked, 1)
	assert.False(t, c.Modal().Open())
}

func TestBooks_DeleteConfirmedRemovesRow(t *testing.T) {
	h := newHarness(true)
	h.gw.books = envelope(threeBooks(), 1, 1)
	c := controller.NewBooksController(h.gw, h.deps)
	require.NoError(t, c.Fetch(context.Background(), 1, ""))

	// The refetch fails; the deleted row must still be gone.
	h.gw.booksErr = errors.New("offline")
	require.NoError(t, c.Delete(context.Background(), threeBooks()[1]))

	assert.Equal(t, 1, h.gw.count("DeleteBook"))
	assert.Equal(t, int64(2), h.gw.lastID)
	for _, b := range c.State().Items {
		assert.NotEqual(t, int64(2), b.ID)
	}
	assert.Contains(t, h.notes.successes, "Book deleted successfully")
}
