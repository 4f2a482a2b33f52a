package controller

import (
	"context"
	"time"

	"github.com/blackwell-systems/libractl/internal/api"
	"github.com/blackwell-systems/libractl/internal/library"
)

// BooksGateway is what the admin books page needs from the gateway.
type BooksGateway interface {
	ListAdminBooks(ctx context.Context, p api.ListParams) (api.ListResult[library.Book], error)
	CreateBook(ctx context.Context, in library.BookInput) (*library.Book, error)
	UpdateBook(ctx context.Context, id int64, in library.BookInput) (*library.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// UsersGateway is what the users page needs.
type UsersGateway interface {
	ListUsers(ctx context.Context, p api.ListParams) (api.ListResult[library.User], error)
	DeleteUser(ctx context.Context, id int64) error
	SetUserStatus(ctx context.Context, id int64, status string) error
}

// TransactionsGateway is what the transactions page needs.
type TransactionsGateway interface {
	ListTransactions(ctx context.Context, p api.ListParams) (api.ListResult[library.Transaction], error)
}

// BorrowingsGateway is what the admin borrowings page needs.
type BorrowingsGateway interface {
	ListBorrowings(ctx context.Context) (api.ListResult[library.Transaction], error)
	AdminReturn(ctx context.Context, id int64) (api.Ack, error)
	AdminRenew(ctx context.Context, id int64) (api.Ack, error)
}

// DashboardGateway is what the member dashboard needs.
type DashboardGateway interface {
	ListBooks(ctx context.Context, p api.ListParams) (api.ListResult[library.Book], error)
	ListBorrowedBooks(ctx context.Context) (api.ListResult[library.Loan], error)
	Borrow(ctx context.Context, bookID int64, due time.Time) (api.Ack, error)
	ReturnTransaction(ctx context.Context, txID int64) (api.Ack, error)
}

// StatsGateway serves the admin dashboard counters.
type StatsGateway interface {
	DashboardStats(ctx context.Context) (library.Stats, error)
}

// AdminGateway is everything the admin dashboard composes.
type AdminGateway interface {
	BooksGateway
	UsersGateway
	TransactionsGateway
	StatsGateway
}

// Gateway is the full surface; *api.Client satisfies it.
type Gateway interface {
	AdminGateway
	BorrowingsGateway
	DashboardGateway
}

var _ Gateway = (*api.Client)(nil)
