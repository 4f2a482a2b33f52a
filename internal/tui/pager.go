package tui

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/libractl/internal/library"
)

// RenderPagination draws "‹ Prev 1 2 [3] Next ›" for p. Prev and Next are
// dimmed when they would not move. window > 0 limits the page numbers shown
// around the current page; 0 lists every page.
func RenderPagination(p library.Pagination, window int) string {
	prev := StyleNormal.Render("‹ Prev")
	if !p.HasPrev() {
		prev = StyleDisabled.Render("‹ Prev")
	}
	next := StyleNormal.Render("Next ›")
	if !p.HasNext() {
		next = StyleDisabled.Render("Next ›")
	}

	pages := p.Pages()
	if window > 0 {
		pages = p.Window(window)
	}
	nums := make([]string, len(pages))
	for i, n := range pages {
		if n == p.CurrentPage {
			nums[i] = StyleHighlight.Render(fmt.Sprintf("[%d]", n))
		} else {
			nums[i] = StyleHelp.Render(fmt.Sprintf("%d", n))
		}
	}

	summary := StyleHelp.Render(fmt.Sprintf("  page %d of %d · %d total", p.CurrentPage, p.LastPage, p.Total))
	return prev + " " + strings.Join(nums, " ") + " " + next + summary
}
