package app

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/tui"
)

// termWidth is the usable output width: the terminal's, or 100 when
// output is piped.
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		return w - 2
	}
	return 100
}

// printTable lays rows out under cols at the terminal width.
func printTable(cols []tui.Column, rows [][]string) {
	tbl := tui.NewTable(termWidth(), cols...)
	fmt.Println(tbl.Header())
	for _, r := range rows {
		fmt.Println(tbl.Row(r, false))
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPager prints the page cursor below a paged list.
func printPager(p library.Pagination) {
	fmt.Println()
	fmt.Println(tui.RenderPagination(p, 0))
}

// pagedJSON is the --json form of a paged list.
type pagedJSON[T any] struct {
	Data []T                `json:"data"`
	Meta library.Pagination `json:"meta"`
}
