package controller

import (
	"context"
	"slices"
	"sync"

	"github.com/blackwell-systems/libractl/internal/library"
)

// BorrowingsState is a snapshot of the admin borrowings page.
type BorrowingsState struct {
	All     []library.Transaction
	Tab     library.BorrowingTab
	Loading bool
}

// Visible is the subset of All that belongs on the active tab.
func (s BorrowingsState) Visible() []library.Transaction {
	return s.Tab.Apply(s.All)
}

// BorrowingsController lists every transaction once and filters locally by
// tab. Return and renew refetch on success.
type BorrowingsController struct {
	gw BorrowingsGateway
	d  *Deps

	mu    sync.Mutex
	state BorrowingsState
	seq   uint64
}

// NewBorrowingsController starts on the active tab.
func NewBorrowingsController(gw BorrowingsGateway, d *Deps) *BorrowingsController {
	return &BorrowingsController{
		gw:    gw,
		d:     d,
		state: BorrowingsState{All: []library.Transaction{}, Tab: library.TabActive},
	}
}

// State returns a copy of the page state.
func (c *BorrowingsController) State() BorrowingsState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.All = slices.Clone(c.state.All)
	return s
}

// Visible returns the transactions shown on the current tab.
func (c *BorrowingsController) Visible() []library.Transaction {
	return c.State().Visible()
}

// SetTab switches tabs. The filter is local; nothing is fetched.
func (c *BorrowingsController) SetTab(tab library.BorrowingTab) {
	c.mu.Lock()
	c.state.Tab = tab
	c.mu.Unlock()
}

// Fetch loads every transaction. On failure the list is emptied.
func (c *BorrowingsController) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state.Loading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if seq == c.seq {
			c.state.Loading = false
		}
		c.mu.Unlock()
	}()

	res, err := c.gw.ListBorrowings(ctx)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		c.state.All = []library.Transaction{}
		c.mu.Unlock()
		return c.d.fail("borrowings.fetch", err, "Failed to load borrowings")
	}
	c.state.All = res.Items
	if c.state.All == nil {
		c.state.All = []library.Transaction{}
	}
	c.mu.Unlock()
	return nil
}

// Return closes borrowing id on behalf of its member.
func (c *BorrowingsController) Return(ctx context.Context, id int64) error {
	if _, err := c.gw.AdminReturn(ctx, id); err != nil {
		return c.d.fail("borrowings.return", err, "Failed to return book")
	}
	c.d.success("Book returned successfully")
	_ = c.Fetch(ctx)
	return nil
}

// Renew extends borrowing id.
func (c *BorrowingsController) Renew(ctx context.Context, id int64) error {
	if _, err := c.gw.AdminRenew(ctx, id); err != nil {
		return c.d.fail("borrowings.renew", err, "Failed to renew book")
	}
	c.d.success("Book renewed successfully")
	_ = c.Fetch(ctx)
	return nil
}
