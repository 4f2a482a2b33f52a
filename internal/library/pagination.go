package library

// DefaultPerPage is used when neither the caller nor the gateway names a page size.
const DefaultPerPage = 10

// Pagination is the cursor of one paged resource.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// NewPagination returns the cursor a list starts with before any fetch.
func NewPagination(perPage int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return Pagination{CurrentPage: 1, LastPage: 1, PerPage: perPage}
}

// Normalize fills absent or zero fields: page 1 of 1, perPage, total 0.
func (p Pagination) Normalize(perPage int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if p.CurrentPage <= 0 {
		p.CurrentPage = 1
	}
	if p.LastPage <= 0 {
		p.LastPage = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = perPage
	}
	if p.Total < 0 {
		p.Total = 0
	}
	return p
}

// HasPrev is false exactly on the first page.
func (p Pagination) HasPrev() bool {
	return p.CurrentPage != 1
}

// HasNext is false exactly on the last page.
func (p Pagination) HasNext() bool {
	return p.CurrentPage != p.LastPage
}

// Pages lists every page number from 1 to LastPage. There is no windowing;
// datasets are assumed small.
func (p Pagination) Pages() []int {
	last := p.LastPage
	if last < 1 {
		last = 1
	}
	pages := make([]int, last)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Window lists at most size page numbers centred on the current page.
// It is an opt-in alternative to Pages for large result sets.
func (p Pagination) Window(size int) []int {
	all := p.Pages()
	if size <= 0 || size >= len(all) {
		return all
	}
	start := p.CurrentPage - 1 - size/2
	if start < 0 {
		start = 0
	}
	if start+size > len(all) {
		start = len(all) - size
	}
	return all[start : start+size]
}

// Clamp bounds a requested page to 1..LastPage.
func (p Pagination) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if p.LastPage > 0 && page > p.LastPage {
		return p.LastPage
	}
	return page
}
