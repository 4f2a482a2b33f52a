package controller

import (
	"context"
	"sync"

	"github.com/blackwell-systems/libractl/internal/library"
)

// AdminTab is a section of the admin dashboard.
type AdminTab string

const (
	AdminDashboard    AdminTab = "dashboard"
	AdminBooks        AdminTab = "books"
	AdminUsers        AdminTab = "users"
	AdminTransactions AdminTab = "transactions"
)

// AdminTabs lists the sections in display order.
var AdminTabs = []AdminTab{AdminDashboard, AdminBooks, AdminUsers, AdminTransactions}

// AdminController composes the books, users and transactions pages with
// the statistics panel. Switching tab fetches that tab; book and user
// mutations refresh the statistics.
type AdminController struct {
	Books        *BooksController
	Users        *UsersController
	Transactions *TransactionsController

	gw StatsGateway
	d  *Deps

	mu    sync.Mutex
	tab   AdminTab
	stats library.Stats
}

// NewAdminController wires the sub-pages to gw.
func NewAdminController(gw AdminGateway, d *Deps) *AdminController {
	c := &AdminController{
		Books:        NewBooksController(gw, d),
		Users:        NewUsersController(gw, d),
		Transactions: NewTransactionsController(gw, d),
		gw:           gw,
		d:            d,
		tab:          AdminDashboard,
	}
	refreshStats := func(ctx context.Context) { _ = c.FetchStats(ctx) }
	c.Books.changed = refreshStats
	c.Users.changed = refreshStats
	return c
}

// Tab returns the active section.
func (c *AdminController) Tab() AdminTab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}

// Stats returns the last fetched counters.
func (c *AdminController) Stats() library.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// SetTab switches section and fetches its first page.
func (c *AdminController) SetTab(ctx context.Context, tab AdminTab) error {
	c.mu.Lock()
	c.tab = tab
	c.mu.Unlock()

	switch tab {
	case AdminBooks:
		return c.Books.Fetch(ctx, 1, "")
	case AdminUsers:
		return c.Users.Fetch(ctx, 1, "")
	case AdminTransactions:
		return c.Transactions.Fetch(ctx, 1, "")
	}
	return c.FetchStats(ctx)
}

// FetchStats loads the counters. On failure they read zero.
func (c *AdminController) FetchStats(ctx context.Context) error {
	s, err := c.gw.DashboardStats(ctx)
	if err != nil {
		c.mu.Lock()
		c.stats = library.Stats{}
		c.mu.Unlock()
		return c.d.fail("admin.stats", err, "Failed to load dashboard statistics")
	}
	c.mu.Lock()
	c.stats = s
	c.mu.Unlock()
	return nil
}
