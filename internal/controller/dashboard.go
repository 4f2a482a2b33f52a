package controller

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/libractl/internal/api"
	"github.com/blackwell-systems/libractl/internal/library"
)

// MaxBorrowDays is the longest loan a member may ask for.
const MaxBorrowDays = 7

// Messages shown on the member dashboard.
const (
	MsgNoDueDate      = "Please select a return date"
	MsgDueTooFar      = "Maximum borrowing period is 1 week"
	MsgDueInPast      = "Return date cannot be in the past"
	MsgAuthRequired   = "Authentication required"
	MsgTxNotFound     = "Transaction not found"
	MsgReturnDenied   = "You are not authorized to return this book"
	MsgAlreadyReturn  = "This book was already returned"
	MsgReturnFailed   = "Failed to return book"
	MsgRefreshed      = "Data refreshed successfully"
	MsgRefreshFailed  = "Failed to refresh data"
	msgBorrowed       = "Book borrowed successfully"
	msgBorrowFailed   = "Failed to borrow book"
	msgReturned       = "Book returned successfully"
	msgBooksFailed    = "Failed to load books"
	msgLoansFailed    = "Failed to load borrowed books"
	confirmReturnHead = "Confirm Return"
)

// DashboardState is a snapshot of the member dashboard.
type DashboardState struct {
	Books       []library.Book
	Loans       []library.Loan
	Tab         library.CatalogTab
	SelectedID  int64
	DueDate     *time.Time
	LoadingBook bool
	LoadingLoan bool
	Busy        bool
	LastUpdated time.Time
}

// VisibleBooks is the catalog subset for the all and available tabs. The
// borrowed tab shows Loans instead and yields nil here.
func (s DashboardState) VisibleBooks() []library.Book {
	switch s.Tab {
	case library.TabAvailable:
		return library.BookFilter{AvailableOnly: true}.Apply(s.Books)
	case library.TabBorrowed:
		return nil
	}
	return s.Books
}

// ShowsLoans reports whether the current tab lists loans.
func (s DashboardState) ShowsLoans() bool {
	return s.Tab == library.TabBorrowed
}

// OverdueCount counts loans past due at now. Display only.
func (s DashboardState) OverdueCount(now time.Time) int {
	n := 0
	for _, l := range s.Loans {
		if !l.Returned() && library.IsOverdue(l.DueDate, now) {
			n++
		}
	}
	return n
}

// DashboardController drives the member dashboard: the catalog, the
// member's loans, borrowing and returning.
type DashboardController struct {
	gw DashboardGateway
	d  *Deps

	mu       sync.Mutex
	state    DashboardState
	bookSeq  uint64
	loansSeq uint64
}

// NewDashboardController starts on the all tab with nothing loaded.
func NewDashboardController(gw DashboardGateway, d *Deps) *DashboardController {
	return &DashboardController{
		gw: gw,
		d:  d,
		state: DashboardState{
			Books: []library.Book{},
			Loans: []library.Loan{},
			Tab:   library.TabAll,
		},
	}
}

// State returns a copy of the dashboard state.
func (c *DashboardController) State() DashboardState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Books = slices.Clone(c.state.Books)
	s.Loans = slices.Clone(c.state.Loans)
	if c.state.DueDate != nil {
		d := *c.state.DueDate
		s.DueDate = &d
	}
	return s
}

// SetTab switches between all, available and borrowed. Local only.
func (c *DashboardController) SetTab(tab library.CatalogTab) {
	c.mu.Lock()
	c.state.Tab = tab
	c.mu.Unlock()
}

// Select marks bookID as the one the borrow form is for.
func (c *DashboardController) Select(bookID int64) {
	c.mu.Lock()
	c.state.SelectedID = bookID
	c.mu.Unlock()
}

// SetDueDate records the requested return date. nil clears it.
func (c *DashboardController) SetDueDate(d *time.Time) {
	c.mu.Lock()
	if d == nil {
		c.state.DueDate = nil
	} else {
		v := *d
		c.state.DueDate = &v
	}
	c.mu.Unlock()
}

// FetchCatalog loads the member catalog with display defaults applied.
func (c *DashboardController) FetchCatalog(ctx context.Context) error {
	c.mu.Lock()
	c.bookSeq++
	seq := c.bookSeq
	c.state.LoadingBook = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if seq == c.bookSeq {
			c.state.LoadingBook = false
		}
		c.mu.Unlock()
	}()

	res, err := c.gw.ListBooks(ctx, api.ListParams{})

	c.mu.Lock()
	if seq != c.bookSeq {
		c.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		c.state.Books = []library.Book{}
		c.mu.Unlock()
		return c.d.fail("dashboard.books", err, msgBooksFailed)
	}
	books := make([]library.Book, len(res.Items))
	for i, b := range res.Items {
		books[i] = b.WithDefaults()
	}
	c.state.Books = books
	c.state.LastUpdated = c.d.now()
	c.mu.Unlock()
	return nil
}

// FetchLoans loads the member's borrowed books.
func (c *DashboardController) FetchLoans(ctx context.Context) error {
	c.mu.Lock()
	c.loansSeq++
	seq := c.loansSeq
	c.state.LoadingLoan = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if seq == c.loansSeq {
			c.state.LoadingLoan = false
		}
		c.mu.Unlock()
	}()

	res, err := c.gw.ListBorrowedBooks(ctx)

	c.mu.Lock()
	if seq != c.loansSeq {
		c.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		c.state.Loans = []library.Loan{}
		c.mu.Unlock()
		return c.d.fail("dashboard.loans", err, msgLoansFailed)
	}
	now := c.d.now()
	loans := make([]library.Loan, len(res.Items))
	for i, l := range res.Items {
		loans[i] = l.WithDefaults(now)
	}
	c.state.Loans = loans
	c.state.LastUpdated = now
	c.mu.Unlock()
	return nil
}

// fetchBoth reloads the catalog and loans concurrently and returns once
// both have finished. A real failure outranks a superseded fetch, so
// ErrStale comes back only when nothing else went wrong.
func (c *DashboardController) fetchBoth(ctx context.Context) error {
	var (
		g    errgroup.Group
		errs [2]error
	)
	g.Go(func() error { errs[0] = c.FetchCatalog(ctx); return nil })
	g.Go(func() error { errs[1] = c.FetchLoans(ctx); return nil })
	_ = g.Wait()

	var stale error
	for _, err := range errs {
		switch {
		case err == nil:
		case errors.Is(err, ErrStale):
			stale = err
		default:
			return err
		}
	}
	return stale
}

// Refresh reloads both lists and reports the combined outcome. A refresh
// overtaken by a newer one reports nothing and returns ErrStale.
func (c *DashboardController) Refresh(ctx context.Context) error {
	err := c.fetchBoth(ctx)
	switch {
	case errors.Is(err, ErrStale):
		return err
	case err != nil:
		return c.d.reject(MsgRefreshFailed, err)
	}
	c.d.success(MsgRefreshed)
	return nil
}

// ValidateDueDate applies the borrow bounds by calendar day in now's zone:
// no earlier than today and no later than today plus MaxBorrowDays.
func ValidateDueDate(due *time.Time, now time.Time) string {
	if due == nil {
		return MsgNoDueDate
	}
	today := startOfDay(now)
	day := startOfDay(due.In(now.Location()))
	if day.After(today.AddDate(0, 0, MaxBorrowDays)) {
		return MsgDueTooFar
	}
	if day.Before(today) {
		return MsgDueInPast
	}
	return ""
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Borrow lends bookID until the chosen due date. An invalid date is
// rejected before any request. On success the selection is cleared and
// both lists are reloaded together.
func (c *DashboardController) Borrow(ctx context.Context, bookID int64) error {
	s := c.State()
	if msg := ValidateDueDate(s.DueDate, c.d.now()); msg != "" {
		return c.d.reject(msg, ErrInvalid)
	}

	c.setBusy(true)
	defer c.setBusy(false)

	ack, err := c.gw.Borrow(ctx, bookID, *s.DueDate)
	if err != nil {
		return c.d.fail("dashboard.borrow", err, msgBorrowFailed)
	}
	c.d.success(orDefault(ack.Message, msgBorrowed))

	c.mu.Lock()
	c.state.SelectedID = 0
	c.state.DueDate = nil
	c.mu.Unlock()

	_ = c.fetchBoth(ctx)
	return nil
}

// Return closes one of the member's loans after confirmation. On failure
// both lists are left as they were.
func (c *DashboardController) Return(ctx context.Context, loan library.Loan) error {
	if !c.d.Session.Authenticated() {
		return c.d.reject(MsgAuthRequired, ErrInvalid)
	}
	if !c.d.confirm(ReturnPrompt(loan)) {
		return ErrDeclined
	}

	c.setBusy(true)
	defer c.setBusy(false)

	ack, err := c.gw.ReturnTransaction(ctx, loan.TransactionID)
	if err != nil {
		msg := ReturnErrorMessage(err)
		c.d.Log.Error().Err(err).Str("op", "dashboard.return").Msg(msg)
		return c.d.reject(msg, err)
	}
	c.d.success(orDefault(ack.Message, msgReturned))
	_ = c.fetchBoth(ctx)
	return nil
}

// ReturnPrompt is the confirmation shown before a loan is returned.
func ReturnPrompt(loan library.Loan) (title, text string) {
	return confirmReturnHead, `Are you sure you want to return "` + loan.Title + `"?`
}

// ReturnErrorMessage classifies a failed return for the member.
func ReturnErrorMessage(err error) string {
	switch api.StatusOf(err) {
	case 404:
		return MsgTxNotFound
	case 403:
		return MsgReturnDenied
	case 400:
		return api.MessageOf(err, MsgAlreadyReturn)
	case 0:
		return MsgReturnFailed
	}
	return api.MessageOf(err, MsgReturnFailed)
}

func (c *DashboardController) setBusy(b bool) {
	c.mu.Lock()
	c.state.Busy = b
	c.mu.Unlock()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
