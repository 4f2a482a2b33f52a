package controller

import (
	"context"
	"sync"

	"github.com/blackwell-systems/libractl/internal/library"
)

// UsersController drives the account list.
type UsersController struct {
	*pager[library.User]

	gw UsersGateway
	d  *Deps

	mu    sync.Mutex
	modal Modal[library.User]

	changed func(context.Context)
}

// NewUsersController returns a controller with an empty first page.
func NewUsersController(gw UsersGateway, d *Deps) *UsersController {
	return &UsersController{
		pager: newPager[library.User](d, "users.fetch", "Failed to load users", gw.ListUsers),
		gw:    gw,
		d:     d,
	}
}

// Modal returns the open dialog.
func (c *UsersController) Modal() Modal[library.User] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

// OpenDelete shows the delete confirmation for u.
func (c *UsersController) OpenDelete(u library.User) {
	c.mu.Lock()
	c.modal = confirmingDelete(u)
	c.mu.Unlock()
}

// CloseModal hides the dialog and forgets its target.
func (c *UsersController) CloseModal() {
	c.mu.Lock()
	c.modal = Modal[library.User]{}
	c.mu.Unlock()
}

// LocalFilter narrows the loaded page by name or email without a request.
func (c *UsersController) LocalFilter(term string) []library.User {
	return library.UserFilter{Search: term}.Apply(c.State().Items)
}

// Delete asks for confirmation, then removes u.
func (c *UsersController) Delete(ctx context.Context, u library.User) error {
	c.OpenDelete(u)
	defer c.CloseModal()

	if !c.d.confirm("Are you sure?", "You won't be able to revert this!") {
		return ErrDeclined
	}
	if err := c.gw.DeleteUser(ctx, u.ID); err != nil {
		return c.d.fail("users.delete", err, "Failed to delete user")
	}
	c.remove(func(x library.User) bool { return x.ID == u.ID })
	c.d.success("User deleted successfully")
	c.afterMutation(ctx)
	return nil
}

// ToggleStatus flips u between active and inactive.
func (c *UsersController) ToggleStatus(ctx context.Context, u library.User) error {
	if err := c.gw.SetUserStatus(ctx, u.ID, u.ToggledStatus()); err != nil {
		return c.d.fail("users.status", err, "Failed to update user status")
	}
	c.d.success("User status updated successfully")
	c.afterMutation(ctx)
	return nil
}

func (c *UsersController) afterMutation(ctx context.Context) {
	_ = c.Refresh(ctx)
	if c.changed != nil {
		c.changed(ctx)
	}
}
