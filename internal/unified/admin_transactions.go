package unified

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/tui"
)

// adminTransactionsPage is the read-only borrowing history.
type adminTransactionsPage struct {
	list  pagedList[library.Transaction]
	admin *controller.AdminController
}

func transactionColumns() []tui.Column {
	return []tui.Column{
		{Title: "Book", Weight: 4, Min: 12},
		{Title: "Borrower", Weight: 3, Min: 10},
		{Title: "Borrowed", Min: 12},
		{Title: "Due", Min: 12},
		{Title: "Returned", Min: 16},
		{Title: "Status", Min: 9},
	}
}

func transactionCells(t library.Transaction) []string {
	return []string{
		t.Book.Title,
		tui.StyleAuthor.Render(t.User.Name),
		library.FormatDate(t.BorrowedDate),
		library.FormatDate(t.DueDate),
		library.FormatReturnDate(t.ReturnedDate),
		tui.StatusStyle(t.Status).Render(library.StatusLabel(t.Status)),
	}
}

func newAdminTransactionsPage(ctx context.Context, admin *controller.AdminController, window int) *adminTransactionsPage {
	return &adminTransactionsPage{
		list:  newPagedList[library.Transaction](ctx, ViewAdminTransactions, "Transactions", admin.Transactions, window, transactionColumns(), transactionCells),
		admin: admin,
	}
}

func (p *adminTransactionsPage) Init() tea.Cmd {
	return p.list.call(func(ctx context.Context) error {
		return p.admin.SetTab(ctx, controller.AdminTransactions)
	})
}

func (p *adminTransactionsPage) Capturing() bool { return p.list.searching }

func (p *adminTransactionsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	var cmd tea.Cmd
	p.list, cmd, _ = p.list.update(msg)
	return p, cmd
}

func (p *adminTransactionsPage) View() string {
	return p.list.render(nil)
}
