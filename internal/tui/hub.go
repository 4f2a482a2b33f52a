package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
)

// MenuItem represents an action in the hub menu
type MenuItem struct {
	Key         string
	Label       string
	Description string
	AdminOnly   bool
}

// FilterValue implements list.Item
func (m MenuItem) FilterValue() string {
	return m.Label + " " + m.Description
}

// HubContext holds the signed-in account shown in the hub header
type HubContext struct {
	UserName string
	Email    string
	Admin    bool
	BaseURL  string
}

// menuItems defines the menu in logical order
var menuItems = []MenuItem{
	// Member
	{Key: "catalog", Label: "Browse Catalog", Description: "Search books and borrow a copy"},
	{Key: "loans", Label: "My Loans", Description: "Books you have borrowed and their due dates"},
	// Admin
	{Key: "stats", Label: "Dashboard", Description: "Library totals and overdue count", AdminOnly: true},
	{Key: "admin-books", Label: "Manage Books", Description: "Add, edit and delete catalog entries", AdminOnly: true},
	{Key: "admin-users", Label: "Manage Users", Description: "Activate, deactivate and delete accounts", AdminOnly: true},
	{Key: "admin-transactions", Label: "Transactions", Description: "Full borrowing history", AdminOnly: true},
	{Key: "borrowings", Label: "Borrowings", Description: "Return or renew active loans", AdminOnly: true},
	// Exit
	{Key: "quit", Label: "Quit", Description: "Exit libractl"},
}

// MenuItems returns the entries a session may see. Admin entries are
// hidden from members; the gateway enforces access either way.
func MenuItems(admin bool) []MenuItem {
	out := make([]MenuItem, 0, len(menuItems))
	for _, it := range menuItems {
		if it.AdminOnly && !admin {
			continue
		}
		out = append(out, it)
	}
	return out
}

// RenderMenuItem draws a hub entry as a padded label and its description.
func RenderMenuItem(w io.Writer, item list.Item, selected bool) {
	mi, ok := item.(MenuItem)
	if !ok {
		return
	}
	display := fmt.Sprintf("%-20s %s", mi.Label, StyleHelp.Render(mi.Description))
	if selected {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+display))
		return
	}
	_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(display))
}
