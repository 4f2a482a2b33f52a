package api

import (
	"context"
	"net/http"

	"github.com/blackwell-systems/libractl/internal/library"
)

// ListUsers returns one page of accounts.
func (c *Client) ListUsers(ctx context.Context, p ListParams) (ListResult[library.User], error) {
	return getList[library.User](ctx, c, withQuery(c.url("admin", "users"), p.query()), p.PerPage)
}

// DeleteUser removes account id.
func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.url("admin", "users", id(userID)), nil, nil)
}

// SetUserStatus switches an account between active and inactive.
func (c *Client) SetUserStatus(ctx context.Context, userID int64, status string) error {
	body := struct {
		Status string `json:"status"`
	}{status}
	return c.doJSON(ctx, http.MethodPatch, c.url("admin", "users", id(userID), "status"), body, nil)
}
