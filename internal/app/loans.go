package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/tui"
)

func newBorrowCmd() *cobra.Command {
	var due string

	cmd := &cobra.Command{
		Use:   "borrow <book-id>",
		Short: "Borrow a copy of a book",
		Long: fmt.Sprintf(`Borrow a copy of a book until --due (YYYY-MM-DD). The due date must
fall between today and %d days from now.

Examples:
  libractl borrow 12 --due 2026-10-20`, controller.MaxBorrowDays),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if due != "" && tui.ParseDueDate(due, time.Local) == nil {
				return fmt.Errorf("invalid --due %q; use YYYY-MM-DD", due)
			}

			c := controller.NewDashboardController(client, newDeps(false))
			c.Select(id)
			c.SetDueDate(tui.ParseDueDate(due, time.Local))
			return c.Borrow(cmd.Context(), id)
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "Return date (YYYY-MM-DD)")
	return cmd
}

func loanColumns() []tui.Column {
	return []tui.Column{
		{Title: "Loan", Min: 6},
		{Title: "Title", Weight: 4, Min: 14},
		{Title: "Author", Weight: 3, Min: 10},
		{Title: "Borrowed", Min: 12},
		{Title: "Due", Min: 12},
		{Title: "Status", Min: 9},
	}
}

func loanCells(l library.Loan, now time.Time) []string {
	status := l.LoanStatus
	if !l.Returned() && library.IsOverdue(l.DueDate, now) {
		status = library.StatusOverdue
	}
	return []string{
		strconv.FormatInt(l.TransactionID, 10),
		l.Title,
		tui.StyleAuthor.Render(l.Author),
		library.FormatDate(l.BorrowedAt),
		library.FormatDate(l.DueDate),
		tui.StatusStyle(status).Render(library.StatusLabel(status)),
	}
}

func newLoansCmd() *cobra.Command {
	var (
		tab     string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "loans",
		Short: "Show your borrowed books",
		Long: `Show the member dashboard. The borrowed tab (default) lists your loans;
all and available list the catalog.

Examples:
  libractl loans
  libractl loans --tab available`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			d := newDeps(false)
			c := controller.NewDashboardController(client, d)
			c.SetTab(library.ParseCatalogTab(tab))
			ctx := cmd.Context()

			if err := c.FetchLoans(ctx); err != nil {
				return err
			}
			s := c.State()
			if !s.ShowsLoans() {
				if err := c.FetchCatalog(ctx); err != nil {
					return err
				}
				s = c.State()
				if jsonOut {
					return printJSON(s.VisibleBooks())
				}
				header("Catalog: %s  (%d books)", s.Tab, len(s.VisibleBooks()))
				printBooks(s.VisibleBooks())
				return nil
			}

			if jsonOut {
				return printJSON(s.Loans)
			}
			now := d.Now()
			header("My Loans  (%d)", len(s.Loans))
			if n := s.OverdueCount(now); n > 0 {
				fmt.Println(color.RedString("%d overdue", n))
			}
			if len(s.Loans) == 0 {
				fmt.Println(color.YellowString("You have no borrowed books."))
				return nil
			}
			rows := make([][]string, len(s.Loans))
			for i, l := range s.Loans {
				rows[i] = loanCells(l, now)
			}
			printTable(loanColumns(), rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&tab, "tab", string(library.TabBorrowed), "all, available or borrowed")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newReturnCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "return <transaction-id>",
		Short: "Return a borrowed book",
		Long: `Return one of your loans by its transaction id, as listed by 'libractl loans'.

Examples:
  libractl return 70
  libractl return 70 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			txID, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := controller.NewDashboardController(client, newDeps(yes))
			if err := c.FetchLoans(cmd.Context()); err != nil {
				return err
			}

			loan := library.Loan{TransactionID: txID}
			for _, l := range c.State().Loans {
				if l.TransactionID == txID {
					loan = l
					break
				}
			}
			if loan.Title == "" {
				loan.Title = fmt.Sprintf("transaction %d", txID)
			}
			return c.Return(cmd.Context(), loan)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
