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

func bookColumns() []tui.Column {
	return []tui.Column{
		{Title: "ID", Min: 5},
		{Title: "Title", Weight: 4, Min: 14},
		{Title: "Author", Weight: 3, Min: 10},
		{Title: "Genre", Weight: 2, Min: 8},
		{Title: "Copies", Min: 7},
		{Title: "Status", Min: 12},
	}
}

func bookCells(b library.Book) []string {
	status := tui.StyleAvailable.Render("available")
	if !b.Available() {
		status = tui.StyleOverdue.Render("unavailable")
	}
	return []string{
		strconv.FormatInt(b.ID, 10),
		b.Title,
		tui.StyleAuthor.Render(b.Author),
		tui.StyleGenre.Render(b.Genre),
		fmt.Sprintf("%d/%d", b.AvailableCopies, b.TotalCopies),
		status,
	}
}

func newBooksCmd() *cobra.Command {
	var (
		page    int
		search  string
		perPage int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List books",
		Long: `List books. Administrators see the paged admin list; members see
the catalog, filtered locally by --search.

Examples:
  libractl books
  libractl books --search dune --page 2
  libractl books --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			d := newDeps(false)
			if perPage > 0 {
				d.PerPage = perPage
			}
			ctx := cmd.Context()

			if !store.Current().IsAdmin() {
				c := controller.NewDashboardController(client, d)
				if err := c.FetchCatalog(ctx); err != nil {
					return err
				}
				books := library.BookFilter{Search: search}.Apply(c.State().Books)
				if jsonOut {
					return printJSON(books)
				}
				header("Library Catalog  (%d books)", len(books))
				printBooks(books)
				return nil
			}

			c := controller.NewBooksController(client, d)
			if err := c.Fetch(ctx, page, search); err != nil {
				return err
			}
			s := c.State()
			if jsonOut {
				return printJSON(pagedJSON[library.Book]{Data: s.Items, Meta: s.Pagination})
			}
			header("Books  (%d total)", s.Pagination.Total)
			printBooks(s.Items)
			printPager(s.Pagination)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().StringVar(&search, "search", "", "Match title, author or ISBN")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Rows per page (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	cmd.AddCommand(newBooksAddCmd(), newBooksEditCmd(), newBooksDeleteCmd())
	return cmd
}

func printBooks(books []library.Book) {
	if len(books) == 0 {
		fmt.Println(color.YellowString("No books found."))
		return
	}
	rows := make([][]string, len(books))
	for i, b := range books {
		rows[i] = bookCells(b)
	}
	printTable(bookColumns(), rows)
}

// bookFlags are the form fields as flags, shared by add and edit.
type bookFlags struct {
	in library.BookInput
}

func (f *bookFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.in.Title, "title", "", "Title")
	fl.StringVar(&f.in.Author, "author", "", "Author")
	fl.StringVar(&f.in.Genre, "genre", "", "Genre")
	fl.StringVar(&f.in.Publisher, "publisher", "", "Publisher")
	fl.StringVar(&f.in.ISBN, "isbn", "", "ISBN-10 or ISBN-13")
	fl.StringVar(&f.in.Description, "description", "", "Description")
	fl.IntVar(&f.in.TotalCopies, "copies", 1, "Total copies")
}

// apply copies the flags the user set onto base.
func (f *bookFlags) apply(cmd *cobra.Command, base library.BookInput) library.BookInput {
	fl := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if fl.Changed(name) {
			*dst = v
		}
	}
	set("title", &base.Title, f.in.Title)
	set("author", &base.Author, f.in.Author)
	set("genre", &base.Genre, f.in.Genre)
	set("publisher", &base.Publisher, f.in.Publisher)
	set("isbn", &base.ISBN, f.in.ISBN)
	set("description", &base.Description, f.in.Description)
	if fl.Changed("copies") {
		base.TotalCopies = f.in.TotalCopies
	}
	return base
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

var bookFlagNames = []string{"title", "author", "genre", "publisher", "isbn", "description", "copies"}

func newBooksAddCmd() *cobra.Command {
	var f bookFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Long: `Add a book. Without --title and --author on a terminal, a form opens.

Examples:
  libractl books add --title "Dune" --author "Frank Herbert" --copies 3
  libractl books add`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			in := f.apply(cmd, library.NewBookInput())
			if !anyChanged(cmd, "title", "author") && tui.ShouldUseTUI(cmd) {
				res, err := tui.RunBookForm(nil)
				if err != nil {
					warn("Cancelled.")
					return nil
				}
				in = *res
			}
			return controller.NewBooksController(client, newDeps(false)).Create(cmd.Context(), in)
		},
	}

	f.register(cmd)
	return cmd
}

func newBooksEditCmd() *cobra.Command {
	var f bookFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a book",
		Long: `Edit a book. Flags replace single fields; with none set on a
terminal, a form opens seeded with the current values.

Examples:
  libractl books edit 12 --copies 4
  libractl books edit 12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := controller.NewBooksController(client, newDeps(false))
			b, err := findAdminBook(cmd.Context(), c, id)
			if err != nil {
				return err
			}

			in := f.apply(cmd, library.InputFromBook(*b))
			if !anyChanged(cmd, bookFlagNames...) {
				if !tui.ShouldUseTUI(cmd) {
					return fmt.Errorf("nothing to change; pass at least one field flag")
				}
				res, err := tui.RunBookForm(b)
				if err != nil {
					warn("Cancelled.")
					return nil
				}
				in = *res
			}
			return c.Update(cmd.Context(), id, in)
		},
	}

	f.register(cmd)
	return cmd
}

func newBooksDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := controller.NewBooksController(client, newDeps(yes))
			b, err := findAdminBook(cmd.Context(), c, id)
			if err != nil {
				return err
			}
			header("Book: %s by %s", b.Title, b.Author)
			return c.Delete(cmd.Context(), *b)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

// pagedFetcher is a paginated controller.
type pagedFetcher[T any] interface {
	Fetch(ctx context.Context, page int, search string) error
	State() controller.ListState[T]
}

// findInPages walks src page by page until match holds. The gateway has no
// single-record lookups.
func findInPages[T any](ctx context.Context, src pagedFetcher[T], match func(T) bool) (*T, bool, error) {
	for page := 1; ; page++ {
		if err := src.Fetch(ctx, page, ""); err != nil {
			return nil, false, err
		}
		s := src.State()
		for i := range s.Items {
			if match(s.Items[i]) {
				item := s.Items[i]
				return &item, true, nil
			}
		}
		if !s.Pagination.HasNext() {
			return nil, false, nil
		}
	}
}

func findAdminBook(ctx context.Context, c *controller.BooksController, id int64) (*library.Book, error) {
	b, found, err := findInPages[library.Book](ctx, c, func(b library.Book) bool { return b.ID == id })
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("book %d not found", id)
	}
	return b, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
