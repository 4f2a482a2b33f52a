package controller_test

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/blackwell-systems/libractl/internal/api"
	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/session"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

// fakeGateway records every call and answers from canned results.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	books    api.ListResult[library.Book]
	booksErr error
	users    api.ListResult[library.User]
	usersErr error
	txs      api.ListResult[library.Transaction]
	txsErr   error
	catalog  api.ListResult[library.Book]
	catErr   error
	loans    api.ListResult[library.Loan]
	loansErr error
	stats    library.Stats
	statsErr error

	mutErr error
	ack    api.Ack

	lastParams api.ListParams
	lastDue    time.Time
	lastStatus string
	lastID     int64

	// onList runs inside ListAdminBooks before it answers.
	onList func(p api.ListParams) (api.ListResult[library.Book], error)
	// onCatalog runs inside ListBooks before it answers; n counts calls from 1.
	onCatalog func(n int) (api.ListResult[library.Book], error)
}

func (g *fakeGateway) record(name string) {
	g.mu.Lock()
	g.calls = append(g.calls, name)
	g.mu.Unlock()
}

func (g *fakeGateway) count(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (g *fakeGateway) total() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *fakeGateway) ListAdminBooks(ctx context.Context, p api.ListParams) (api.ListResult[library.Book], error) {
	g.record("ListAdminBooks")
	g.mu.Lock()
	g.lastParams = p
	hook := g.onList
	g.mu.Unlock()
	if hook != nil {
		return hook(p)
	}
	return g.books, g.booksErr
}

func (g *fakeGateway) CreateBook(ctx context.Context, in library.BookInput) (*library.Book, error) {
	g.record("CreateBook")
	return &library.Book{ID: 99, Title: in.Title}, g.mutErr
}

func (g *fakeGateway) UpdateBook(ctx context.Context, id int64, in library.BookInput) (*library.Book, error) {
	g.record("UpdateBook")
	g.lastID = id
	return nil, g.mutErr
}

func (g *fakeGateway) DeleteBook(ctx context.Context, id int64) error {
	g.record("DeleteBook")
	g.lastID = id
	return g.mutErr
}

func (g *fakeGateway) ListUsers(ctx context.Context, p api.ListParams) (api.ListResult[library.User], error) {
	g.record("ListUsers")
	return g.users, g.usersErr
}

func (g *fakeGateway) DeleteUser(ctx context.Context, id int64) error {
	g.record("DeleteUser")
	g.lastID = id
	return g.mutErr
}

func (g *fakeGateway) SetUserStatus(ctx context.Context, id int64, status string) error {
	g.record("SetUserStatus")
	g.lastID = id
	g.lastStatus = status
	return g.mutErr
}

func (g *fakeGateway) ListTransactions(ctx context.Context, p api.ListParams) (api.ListResult[library.Transaction], error) {
	g.record("ListTransactions")
	g.mu.Lock()
	g.lastParams = p
	g.mu.Unlock()
	return g.txs, g.txsErr
}

func (g *fakeGateway) ListBorrowings(ctx context.Context) (api.ListResult[library.Transaction], error) {
	g.record("ListBorrowings")
	return g.txs, g.txsErr
}

func (g *fakeGateway) AdminReturn(ctx context.Context, id int64) (api.Ack, error) {
	g.record("AdminReturn")
	g.lastID = id
	return g.ack, g.mutErr
}

func (g *fakeGateway) AdminRenew(ctx context.Context, id int64) (api.Ack, error) {
	g.record("AdminRenew")
	g.lastID = id
	return g.ack, g.mutErr
}

func (g *fakeGateway) ListBooks(ctx context.Context, p api.ListParams) (api.ListResult[library.Book], error) {
	g.record("ListBooks")
	g.mu.Lock()
	hook := g.onCatalog
	g.mu.Unlock()
	if hook != nil {
		return hook(g.count("ListBooks"))
	}
	return g.catalog, g.catErr
}

func (g *fakeGateway) ListBorrowedBooks(ctx context.Context) (api.ListResult[library.Loan], error) {
	g.record("ListBorrowedBooks")
	return g.loans, g.loansErr
}

func (g *fakeGateway) Borrow(ctx context.Context, bookID int64, due time.Time) (api.Ack, error) {
	g.record("Borrow")
	g.mu.Lock()
	g.lastID = bookID
	g.lastDue = due
	g.mu.Unlock()
	return g.ack, g.mutErr
}

func (g *fakeGateway) ReturnTransaction(ctx context.Context, txID int64) (api.Ack, error) {
	g.record("ReturnTransaction")
	g.lastID = txID
	return g.ack, g.mutErr
}

func (g *fakeGateway) DashboardStats(ctx context.Context) (library.Stats, error) {
	g.record("DashboardStats")
	return g.stats, g.statsErr
}

var _ controller.Gateway = (*fakeGateway)(nil)

// notes collects notifications.
type notes struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *notes) Success(msg string) {
	n.mu.Lock()
	n.successes = append(n.successes, msg)
	n.mu.Unlock()
}

func (n *notes) Error(msg string) {
	n.mu.Lock()
	n.errors = append(n.errors, msg)
	n.mu.Unlock()
}

func (n *notes) lastError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

func (n *notes) lastSuccess() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.successes) == 0 {
		return ""
	}
	return n.successes[len(n.successes)-1]
}

// prompter answers every confirmation the same way and remembers the asks.
type prompter struct {
	answer bool
	asked  []string
}

func (p *prompter) Confirm(title, text string) bool {
	p.asked = append(p.asked, title+": "+text)
	return p.answer
}

type harness struct {
	gw     *fakeGateway
	notes  *notes
	prompt *prompter
	deps   *controller.Deps
}

func newHarness(confirm bool) *harness {
	h := &harness{
		gw:     &fakeGateway{},
		notes:  &notes{},
		prompt: &prompter{answer: confirm},
	}
	h.deps = &controller.Deps{
		Notify:  h.notes,
		Confirm: h.prompt,
		Session: &session.Session{Token: "tok", User: library.User{ID: 1, Role: library.RoleUser}},
		Log:     zerolog.Nop(),
		Now:     func() time.Time { return fixedNow },
		PerPage: 10,
	}
	return h
}

func envelope[T any](items []T, current, last int) api.ListResult[T] {
	return api.ListResult[T]{
		Shape: api.PagedEnvelope,
		Items: items,
		Meta:  library.Pagination{CurrentPage: current, LastPage: last, PerPage: 10, Total: len(items)},
	}
}

func plain[T any](items []T) api.ListResult[T] {
	return api.ListResult[T]{
		Shape: api.PlainList,
		Items: items,
		Meta:  library.Pagination{CurrentPage: 1, LastPage: 1, PerPage: 10, Total: len(items)},
	}
}

func threeBooks() []library.Book {
	return []library.Book{
		{ID: 1, Title: "Dune", Author: "Herbert", TotalCopies: 2, AvailableCopies: 1},
		{ID: 2, Title: "Emma", Author: "Austen", TotalCopies: 1, AvailableCopies: 0},
		{ID: 3, Title: "Ulysses", Author: "Joyce", TotalCopies: 3, AvailableCopies: 3},
	}
}
