package unified

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/tui"
)

var toggleKey = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle status"))

// adminUsersPage lists accounts with delete and activate/deactivate.
type adminUsersPage struct {
	list  pagedList[library.User]
	admin *controller.AdminController
}

func newAdminUsersPage(ctx context.Context, admin *controller.AdminController, window int) *adminUsersPage {
	cols := []tui.Column{
		{Title: "Name", Weight: 3, Min: 10},
		{Title: "Email", Weight: 4, Min: 14},
		{Title: "Role", Min: 6},
		{Title: "Status", Min: 9},
		{Title: "Joined", Min: 12},
	}
	cells := func(u library.User) []string {
		status := tui.StyleAvailable.Render(library.StatusLabel(u.Status))
		if u.Status != library.UserActive {
			status = tui.StyleHelp.Render(library.StatusLabel(u.Status))
		}
		return []string{u.Name, tui.StyleAuthor.Render(u.Email), string(u.Role), status, library.FormatDate(u.CreatedAt)}
	}
	return &adminUsersPage{
		list:  newPagedList[library.User](ctx, ViewAdminUsers, "Manage Users", admin.Users, window, cols, cells),
		admin: admin,
	}
}

func (p *adminUsersPage) Init() tea.Cmd {
	return p.list.call(func(ctx context.Context) error {
		return p.admin.SetTab(ctx, controller.AdminUsers)
	})
}

func (p *adminUsersPage) Capturing() bool { return p.list.searching }

func (p *adminUsersPage) Update(msg tea.Msg) (page, tea.Cmd) {
	var cmd tea.Cmd
	var handled bool
	p.list, cmd, handled = p.list.update(msg)
	if handled {
		return p, cmd
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, cmd
	}

	users := p.admin.Users
	switch {
	case key.Matches(km, p.list.keys.Delete):
		if u, ok := p.list.selected(); ok {
			del := p.list.call(func(ctx context.Context) error { return users.Delete(ctx, u) })
			return p, askConfirm("Are you sure?", fmt.Sprintf("Delete %s? You won't be able to revert this!", u.Name), del)
		}
	case key.Matches(km, toggleKey):
		if u, ok := p.list.selected(); ok {
			return p, p.list.call(func(ctx context.Context) error { return users.ToggleStatus(ctx, u) })
		}
	}
	return p, cmd
}

func (p *adminUsersPage) View() string {
	return p.list.render([]tui.ShortcutEntry{
		{Label: "t toggle status"},
		{Label: "d delete"},
	})
}
