package controller

import (
	"context"
	"slices"
	"sync"

	"github.com/blackwell-systems/libractl/internal/api"
	"github.com/blackwell-systems/libractl/internal/library"
)

// ListState is a snapshot of one paginated list.
type ListState[T any] struct {
	Items      []T
	Pagination library.Pagination
	Search     string
	Loading    bool
}

type listFunc[T any] func(ctx context.Context, p api.ListParams) (api.ListResult[T], error)

// pager is the fetch/search/paging behaviour shared by the paginated admin
// pages. Each fetch takes a sequence number; responses to anything but the
// latest fetch are dropped.
type pager[T any] struct {
	d        *Deps
	op       string
	fallback string
	list     listFunc[T]

	mu    sync.Mutex
	state ListState[T]
	seq   uint64
}

func newPager[T any](d *Deps, op, fallback string, list listFunc[T]) *pager[T] {
	return &pager[T]{
		d:        d,
		op:       op,
		fallback: fallback,
		list:     list,
		state: ListState[T]{
			Items:      []T{},
			Pagination: library.NewPagination(d.PerPage),
		},
	}
}

// State returns a copy of the list state.
func (p *pager[T]) State() ListState[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.state
	s.Items = slices.Clone(p.state.Items)
	return s
}

// Fetch loads one page. page < 1 means 1. On failure the list is emptied
// and the user notified.
func (p *pager[T]) Fetch(ctx context.Context, page int, search string) error {
	if page < 1 {
		page = 1
	}

	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.state.Loading = true
	p.state.Search = search
	p.mu.Unlock()

	defer p.settle(seq)

	res, err := p.list(ctx, api.ListParams{Page: page, Search: search, PerPage: p.d.PerPage})

	p.mu.Lock()
	if seq != p.seq {
		p.mu.Unlock()
		p.d.Log.Debug().Str("op", p.op).Uint64("seq", seq).Msg("dropping stale response")
		return ErrStale
	}
	if err != nil {
		p.state.Items = []T{}
		p.state.Pagination = library.NewPagination(p.d.PerPage)
		p.mu.Unlock()
		return p.d.fail(p.op, err, p.fallback)
	}
	if res.Items == nil {
		res.Items = []T{}
	}
	p.state.Items = res.Items
	p.state.Pagination = res.Meta.Normalize(p.d.PerPage)
	p.mu.Unlock()
	return nil
}

// settle clears Loading unless a newer fetch is still in flight.
func (p *pager[T]) settle(seq uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq == p.seq {
		p.state.Loading = false
	}
}

// Refresh refetches the current page with the current search.
func (p *pager[T]) Refresh(ctx context.Context) error {
	s := p.State()
	return p.Fetch(ctx, s.Pagination.CurrentPage, s.Search)
}

// SetSearch filters server-side and goes back to page 1.
func (p *pager[T]) SetSearch(ctx context.Context, term string) error {
	return p.Fetch(ctx, 1, term)
}

// NextPage is a no-op on the last page.
func (p *pager[T]) NextPage(ctx context.Context) error {
	s := p.State()
	if !s.Pagination.HasNext() {
		return nil
	}
	return p.Fetch(ctx, s.Pagination.CurrentPage+1, s.Search)
}

// PrevPage is a no-op on the first page.
func (p *pager[T]) PrevPage(ctx context.Context) error {
	s := p.State()
	if !s.Pagination.HasPrev() {
		return nil
	}
	return p.Fetch(ctx, s.Pagination.CurrentPage-1, s.Search)
}

// GoToPage fetches page n, clamped to the known page range.
func (p *pager[T]) GoToPage(ctx context.Context, n int) error {
	s := p.State()
	return p.Fetch(ctx, s.Pagination.Clamp(n), s.Search)
}

// remove drops the rows for which drop reports true, without a round trip.
func (p *pager[T]) remove(drop func(T) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Items = slices.DeleteFunc(p.state.Items, drop)
}
