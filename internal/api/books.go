package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/blackwell-systems/libractl/internal/library"
)

// ListBooks returns the member catalog.
func (c *Client) ListBooks(ctx context.Context, p ListParams) (ListResult[library.Book], error) {
	return getList[library.Book](ctx, c, withQuery(c.url("books"), p.query()), p.PerPage)
}

// ListAdminBooks returns one page of the admin book list.
func (c *Client) ListAdminBooks(ctx context.Context, p ListParams) (ListResult[library.Book], error) {
	return getList[library.Book](ctx, c, withQuery(c.url("admin", "books"), p.query()), p.PerPage)
}

// CreateBook adds a book. Available copies start equal to the total.
func (c *Client) CreateBook(ctx context.Context, in library.BookInput) (*library.Book, error) {
	data, err := c.send(ctx, http.MethodPost, c.url("admin", "books"), in.ForCreate(), nil)
	if err != nil {
		return nil, err
	}
	return decodeBook(data)
}

// UpdateBook replaces the editable fields of book id.
func (c *Client) UpdateBook(ctx context.Context, bookID int64, in library.BookInput) (*library.Book, error) {
	data, err := c.send(ctx, http.MethodPut, c.url("admin", "books", id(bookID)), in, nil)
	if err != nil {
		return nil, err
	}
	return decodeBook(data)
}

// DeleteBook removes book id.
func (c *Client) DeleteBook(ctx context.Context, bookID int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.url("admin", "books", id(bookID)), nil, nil)
}

// decodeBook reads a book from a mutation response. Gateways that answer
// with only a message yield a nil book.
func decodeBook(data []byte) (*library.Book, error) {
	inner := unwrapKey(unwrapData(data), "book")
	var peek struct {
		ID int64 `json:"id"`
	}
	if json.Unmarshal(inner, &peek) != nil || peek.ID == 0 {
		return nil, nil
	}
	var b library.Book
	if err := json.Unmarshal(inner, &b); err != nil {
		return nil, fmt.Errorf("decoding book: %w", err)
	}
	return &b, nil
}
