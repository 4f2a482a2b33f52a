package controller_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/libractl/internal/api"
	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/library"
)

func sampleBorrowings() []library.Transaction {
	return []library.Transaction{
		{ID: 1, Status: library.StatusActive, Book: library.BookRef{Title: "Dune"}},
		{ID: 2, Status: library.StatusOverdue, Book: library.BookRef{Title: "Emma"}},
		{ID: 3, Status: library.StatusReturned, Book: library.BookRef{Title: "Ulysses"}},
		{ID: 4, Status: library.StatusReturned, Book: library.BookRef{Title: "Beloved"}},
	}
}

func txIDs(txs []library.Transaction) []int64 {
	out := []int64{}
	for _, t := range txs {
		out = append(out, t.ID)
	}
	return out
}

func TestBorrowings_TabSubsets(t *testing.T) {
	h := newHarness(true)
	h.gw.txs = plain(sampleBorrowings())
	c := controller.NewBorrowingsController(h.gw, h.deps)
	require.NoError(t, c.Fetch(context.Background()))

	assert.Equal(t, []int64{1, 2}, txIDs(c.Visible()), "active tab holds active and overdue")

	c.SetTab(library.TabHistory)
	assert.Equal(t, []int64{3, 4}, txIDs(c.Visible()), "history tab holds returned only")
	assert.Equal(t, 1, h.gw.count("ListBorrowings"), "switching tab is local")
}

func TestBorrowings_FetchFailure(t *testing.T) {
	h := newHarness(true)
	h.gw.txs = plain(sampleBorrowings())
	c := controller.NewBorrowingsController(h.gw, h.deps)
	require.NoError(t, c.Fetch(context.Background()))

	h.gw.txsErr = errors.New("boom")
	require.Error(t, c.Fetch(context.Background()))
	s := c.State()
	assert.Empty(t, s.All)
	assert.False(t, s.Loading)
	assert.Equal(t, "Failed to load borrowings", h.notes.lastError())
}

func TestBorrowings_RenewAndReturn(t *testing.T) {
	h := newHarness(true)
	h.gw.txs = plain(sampleBorrowings())
	c := controller.NewBorrowingsController(h.gw, h.deps)

	require.NoError(t, c.Renew(context.Background(), 2))
	assert.Equal(t, int64(2), h.gw.lastID)
	assert.Equal(t, "Book renewed successfully", h.notes.lastSuccess())
	assert.Equal(t, 1, h.gw.count("ListBorrowings"), "renew refetches")

	require.NoError(t, c.Return(context.Background(), 1))
	assert.Equal(t, "Book returned successfully", h.notes.lastSuccess())
	assert.Equal(t, 2, h.gw.count("ListBorrowings"))

	h.gw.mutErr = &api.APIError{Status: 409}
	require.Error(t, c.Renew(context.Background(), 2))
	assert.Equal(t, "Failed to renew book", h.notes.lastError())
	assert.Equal(t, 2, h.gw.count("ListBorrowings"), "no refetch after failure")
}

func TestUsers_ToggleStatus(t *testing.T) {
	h := newHarness(true)
	c := controller.NewUsersController(h.gw, h.deps)

	require.NoError(t, c.ToggleStatus(context.Background(), library.User{ID: 5, Status: library.UserActive}))
	assert.Equal(t, library.UserInactive, h.gw.lastStatus)
	assert.Equal(t, "User status updated successfully", h.notes.lastSuccess())

	require.NoError(t, c.ToggleStatus(context.Background(), library.User{ID: 5, Status: library.UserInactive}))
	assert.Equal(t, library.UserActive, h.gw.lastStatus)
	assert.Equal(t, 2, h.gw.count("ListUsers"))
}

func TestUsers_DeleteDeclinedAndAccepted(t *testing.T) {
	h := newHarness(false)
	users := []library.User{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Bo"}}
	h.gw.users = plain(users)
	c := controller.NewUsersController(h.gw, h.deps)
	require.NoError(t, c.Fetch(context.Background(), 1, ""))

	assert.ErrorIs(t, c.Delete(context.Background(), users[1]), controller.ErrDeclined)
	assert.Equal(t, 0, h.gw.count("DeleteUser"))

	h.prompt.answer = true
	h.gw.users = plain(users[:1])
	require.NoError(t, c.Delete(context.Background(), users[1]))
	assert.Equal(t, 1, h.gw.count("DeleteUser"))
	assert.Equal(t, []library.User{users[0]}, c.State().Items)
	assert.Equal(t, "User deleted successfully", h.notes.lastSuccess())
}

func TestUsers_LocalFilter(t *testing.T) {
	h := newHarness(true)
	h.gw.users = plain([]library.User{
		{ID: 1, Name: "Ada Lovelace", Email: "ada@x.io"},
		{ID: 2, Name: "Bo", Email: "bo@y.io"},
	})
	c := controller.NewUsersController(h.gw, h.deps)
	require.NoError(t, c.Fetch(context.Background(), 1, ""))

	got := c.LocalFilter("LOVE")
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Len(t, c.LocalFilter(""), 2)
}

func TestAdmin_SetTabFetches(t *testing.T) {
	h := newHarness(true)
	c := controller.NewAdminController(h.gw, h.deps)
	ctx := context.Background()

	require.NoError(t, c.SetTab(ctx, controller.AdminBooks))
	assert.Equal(t, 1, h.gw.count("ListAdminBooks"))
	require.NoError(t, c.SetTab(ctx, controller.AdminUsers))
	assert.Equal(t, 1, h.gw.count("ListUsers"))
	require.NoError(t, c.SetTab(ctx, controller.AdminTransactions))
	assert.Equal(t, 1, h.gw.count("ListTransactions"))
	require.NoError(t, c.SetTab(ctx, controller.AdminDashboard))
	assert.Equal(t, 1, h.gw.count("DashboardStats"))
	assert.Equal(t, controller.AdminDashboard, c.Tab())
}

func TestAdmin_StatsZeroedOnFailure(t *testing.T) {
	h := newHarness(true)
	h.gw.stats = library.Stats{TotalBooks: 4, TotalUsers: 2}
	c := controller.NewAdminController(h.gw, h.deps)
	require.NoError(t, c.FetchStats(context.Background()))
	assert.Equal(t, 4, c.Stats().TotalBooks)

	h.gw.statsErr = errors.New("down")
	require.Error(t, c.FetchStats(context.Background()))
	assert.Equal(t, library.Stats{}, c.Stats())
	assert.Equal(t, "Failed to load dashboard statistics", h.notes.lastError())
}

func TestAdmin_MutationsRefreshStats(t *testing.T) {
	h := newHarness(true)
	c := controller.NewAdminController(h.gw, h.deps)
	ctx := context.Background()

	require.NoError(t, c.Books.Create(ctx, library.BookInput{Title: "T", Author: "A", TotalCopies: 1}))
	assert.Equal(t, 1, h.gw.count("DashboardStats"))

	require.NoError(t, c.Books.Delete(ctx, library.Book{ID: 1}))
	assert.Equal(t, 2, h.gw.count("DashboardStats"))

	require.NoError(t, c.Users.ToggleStatus(ctx, library.User{ID: 1}))
	assert.Equal(t, 3, h.gw.count("DashboardStats"))
}

func TestTransactions_FetchAndFailure(t *testing.T) {
	h := newHarness(true)
	c := controller.NewTransactionsController(h.gw, h.deps)

	h.gw.txs = envelope(sampleBorrowings(), 1, 2)
	require.NoError(t, c.Fetch(context.Background(), 1, "dune"))
	assert.Len(t, c.State().Items, 3)
	assert.Equal(t, "dune", h.gw.lastParams.Search)
	assert.True(t, c.State().Pagination.HasNext())

	h.gw.txsErr = errors.New("connection reset")
	err := c.Fetch(context.Background(), 2, "")
	var f *controller.Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, "Failed to load transactions", h.notes.lastError())

	s := c.State()
	assert.Empty(t, s.Items)
	assert.NotNil(t, s.Items)
	assert.False(t, s.Loading)
	assert.Equal(t, 1, s.Pagination.CurrentPage)
	assert.Equal(t, 1, s.Pagination.LastPage)

	h.gw.txsErr = &api.APIError{Status: 500, Message: "History unavailable"}
	require.Error(t, c.Fetch(context.Background(), 1, ""))
	assert.Equal(t, "History unavailable", h.notes.lastError())
}
