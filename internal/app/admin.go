package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/tui"
)

func transactionColumns() []tui.Column {
	return []tui.Column{
		{Title: "ID", Min: 6},
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
		strconv.FormatInt(t.ID, 10),
		t.Book.Title,
		tui.StyleAuthor.Render(t.User.Name),
		library.FormatDate(t.BorrowedDate),
		library.FormatDate(t.DueDate),
		library.FormatReturnDate(t.ReturnedDate),
		tui.StatusStyle(t.Status).Render(library.StatusLabel(t.Status)),
	}
}

func printTransactions(txs []library.Transaction) {
	if len(txs) == 0 {
		fmt.Println(color.YellowString("No transactions found."))
		return
	}
	rows := make([][]string, len(txs))
	for i, t := range txs {
		rows[i] = transactionCells(t)
	}
	printTable(transactionColumns(), rows)
}

func newBorrowingsCmd() *cobra.Command {
	var (
		tab     string
		search  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "borrowings",
		Short: "List every member's loans",
		Long: `List loans across all members. The active tab holds active and
overdue loans; history holds returned ones.

Examples:
  libractl borrowings
  libractl borrowings --tab history --search austen
  libractl borrowings renew 41`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			c := controller.NewBorrowingsController(client, newDeps(false))
			c.SetTab(library.ParseBorrowingTab(tab))
			if err := c.Fetch(cmd.Context()); err != nil {
				return err
			}
			txs := library.TransactionFilter{Search: search}.Apply(c.Visible())
			if jsonOut {
				return printJSON(txs)
			}
			header("Borrowings: %s  (%d)", c.State().Tab, len(txs))
			printTransactions(txs)
			return nil
		},
	}

	cmd.Flags().StringVar(&tab, "tab", string(library.TabActive), "active or history")
	cmd.Flags().StringVar(&search, "search", "", "Match book or borrower")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	cmd.AddCommand(
		newBorrowingActionCmd("return", "Return a loan on a member's behalf",
			(*controller.BorrowingsController).Return),
		newBorrowingActionCmd("renew", "Extend a loan's due date",
			(*controller.BorrowingsController).Renew),
	)
	return cmd
}

type borrowingAction func(*controller.BorrowingsController, context.Context, int64) error

func newBorrowingActionCmd(use, short string, act borrowingAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <borrowing-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return act(controller.NewBorrowingsController(client, newDeps(false)), cmd.Context(), id)
		},
	}
}

func newUsersCmd() *cobra.Command {
	var (
		page    int
		search  string
		match   string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List member accounts",
		Long: `List member accounts a page at a time. --search asks the gateway;
--match narrows the fetched page locally by name or email.

Examples:
  libractl users --search ada
  libractl users --page 2 --match example.org`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			c := controller.NewUsersController(client, newDeps(false))
			if err := c.Fetch(cmd.Context(), page, search); err != nil {
				return err
			}
			s := c.State()
			users := c.LocalFilter(match)
			if jsonOut {
				return printJSON(pagedJSON[library.User]{Data: users, Meta: s.Pagination})
			}
			header("Users  (%d total)", s.Pagination.Total)
			if len(users) == 0 {
				fmt.Println(color.YellowString("No users found."))
				return nil
			}
			rows := make([][]string, len(users))
			for i, u := range users {
				rows[i] = userCells(u)
			}
			printTable(userColumns(), rows)
			printPager(s.Pagination)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().StringVar(&search, "search", "", "Gateway search on name or email")
	cmd.Flags().StringVar(&match, "match", "", "Keep rows of the fetched page whose name or email contains this")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	cmd.AddCommand(newUsersDeleteCmd(), newUsersToggleCmd())
	return cmd
}

func userColumns() []tui.Column {
	return []tui.Column{
		{Title: "ID", Min: 5},
		{Title: "Name", Weight: 3, Min: 12},
		{Title: "Email", Weight: 4, Min: 16},
		{Title: "Role", Min: 7},
		{Title: "Status", Min: 9},
	}
}

func userCells(u library.User) []string {
	return []string{
		strconv.FormatInt(u.ID, 10),
		u.Name,
		tui.StyleAuthor.Render(u.Email),
		string(u.Role),
		tui.StatusStyle(u.Status).Render(u.Status),
	}
}

func findUser(cmd *cobra.Command, c *controller.UsersController, id int64) (*library.User, error) {
	u, found, err := findInPages[library.User](cmd.Context(), c, func(u library.User) bool { return u.ID == id })
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("user %d not found", id)
	}
	return u, nil
}

func newUsersDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a member account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := controller.NewUsersController(client, newDeps(yes))
			u, err := findUser(cmd, c, id)
			if err != nil {
				return err
			}
			header("User: %s <%s>", u.Name, u.Email)
			return c.Delete(cmd.Context(), *u)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newUsersToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-status <user-id>",
		Short: "Switch an account between active and inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := controller.NewUsersController(client, newDeps(false))
			u, err := findUser(cmd, c, id)
			if err != nil {
				return err
			}
			if err := c.ToggleStatus(cmd.Context(), *u); err != nil {
				return err
			}
			printField("status", u.ToggledStatus())
			return nil
		},
	}
}

func newTransactionsCmd() *cobra.Command {
	var (
		page    int
		search  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Show the full borrowing history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			c := controller.NewTransactionsController(client, newDeps(false))
			if err := c.Fetch(cmd.Context(), page, search); err != nil {
				return err
			}
			s := c.State()
			if jsonOut {
				return printJSON(pagedJSON[library.Transaction]{Data: s.Items, Meta: s.Pagination})
			}
			header("Transactions  (%d total)", s.Pagination.Total)
			printTransactions(s.Items)
			printPager(s.Pagination)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().StringVar(&search, "search", "", "Match book or borrower")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			c := controller.NewAdminController(client, newDeps(false))
			if err := c.FetchStats(cmd.Context()); err != nil {
				return err
			}
			s := c.Stats()
			if jsonOut {
				return printJSON(s)
			}
			header("Dashboard")
			printField("books", strconv.Itoa(s.TotalBooks))
			printField("users", strconv.Itoa(s.TotalUsers))
			printField("borrowed", strconv.Itoa(s.ActiveBorrowings))
			overdue := strconv.Itoa(s.OverdueBooks)
			if s.OverdueBooks > 0 {
				overdue = color.RedString(overdue)
			}
			printField("overdue", overdue)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
