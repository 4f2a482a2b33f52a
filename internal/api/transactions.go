package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blackwell-systems/libractl/internal/library"
)

// ErrNotProcessed is returned when the gateway answers 2xx but reports
// success: false in the body.
var ErrNotProcessed = errors.New("request not processed")

// Ack is the acknowledgement body of a mutation.
type Ack struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

func decodeAck(data []byte) Ack {
	var a Ack
	_ = json.Unmarshal(data, &a)
	return a
}

// ListTransactions returns transactions across all members.
func (c *Client) ListTransactions(ctx context.Context, p ListParams) (ListResult[library.Transaction], error) {
	return getList[library.Transaction](ctx, c, withQuery(c.url("admin", "transactions"), p.query()), p.PerPage)
}

// ListBorrowings returns every transaction as one unpaged list, as the
// borrowings screen filters them locally.
func (c *Client) ListBorrowings(ctx context.Context) (ListResult[library.Transaction], error) {
	return getList[library.Transaction](ctx, c, c.url("admin", "transactions"), 0)
}

// ListBorrowedBooks returns the signed-in member's loans.
func (c *Client) ListBorrowedBooks(ctx context.Context) (ListResult[library.Loan], error) {
	return getList[library.Loan](ctx, c, c.url("user", "borrowed-books"), 0)
}

// Borrow lends bookID to the signed-in member until due.
func (c *Client) Borrow(ctx context.Context, bookID int64, due time.Time) (Ack, error) {
	body := struct {
		DueDate string `json:"due_date"`
	}{due.Format(library.DateLayout)}
	data, err := c.send(ctx, http.MethodPost, c.url("books", id(bookID), "borrow"), body, nil)
	if err != nil {
		return Ack{}, err
	}
	return decodeAck(data), nil
}

// ReturnTransaction closes one of the member's own loans.
func (c *Client) ReturnTransaction(ctx context.Context, txID int64) (Ack, error) {
	data, err := c.send(ctx, http.MethodPost, c.url("transactions", id(txID), "return"), struct{}{}, nil)
	if err != nil {
		return Ack{}, err
	}
	ack := decodeAck(data)
	if ack.Success != nil && !*ack.Success {
		return ack, fmt.Errorf("%w: %s", ErrNotProcessed, ack.Message)
	}
	return ack, nil
}

// AdminReturn closes any member's loan.
func (c *Client) AdminReturn(ctx context.Context, borrowingID int64) (Ack, error) {
	data, err := c.send(ctx, http.MethodPost, c.url("admin", "borrowings", id(borrowingID), "return"), struct{}{}, nil)
	if err != nil {
		return Ack{}, err
	}
	return decodeAck(data), nil
}

// AdminRenew extends a loan's due date.
func (c *Client) AdminRenew(ctx context.Context, borrowingID int64) (Ack, error) {
	data, err := c.send(ctx, http.MethodPost, c.url("admin", "borrowings", id(borrowingID), "renew"), struct{}{}, nil)
	if err != nil {
		return Ack{}, err
	}
	return decodeAck(data), nil
}

// DashboardStats returns the admin counters.
func (c *Client) DashboardStats(ctx context.Context) (library.Stats, error) {
	var s library.Stats
	data, err := c.send(ctx, http.MethodGet, c.url("admin", "dashboard-stats"), nil, nil)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(unwrapData(data), &s); err != nil {
		return s, fmt.Errorf("decoding stats: %w", err)
	}
	return s, nil
}
