package library

import "strings"

// BookFilter matches books whose title, author, ISBN or publisher contains
// Search (case-insensitive). An empty filter matches everything.
type BookFilter struct {
	Search        string
	AvailableOnly bool
}

// Apply returns the subset of books matching the filter.
func (f BookFilter) Apply(books []Book) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if f.AvailableOnly && !b.Available() {
			continue
		}
		if f.Search != "" && !matchesAny(f.Search, b.Title, b.Author, b.ISBN, b.Publisher) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// UserFilter matches users by name or email.
type UserFilter struct {
	Search string
}

// Apply returns the subset of users matching the filter.
func (f UserFilter) Apply(users []User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if f.Search != "" && !matchesAny(f.Search, u.Name, u.Email) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// TransactionFilter matches transactions by book title, author, ISBN or
// borrower name and email.
type TransactionFilter struct {
	Search string
}

// Apply returns the subset of txs matching the filter.
func (f TransactionFilter) Apply(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Search != "" && !matchesAny(f.Search, t.Book.Title, t.Book.Author, t.Book.ISBN, t.User.Name, t.User.Email) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// BorrowingTab selects a slice of the admin borrowings list.
type BorrowingTab string

const (
	TabActive  BorrowingTab = "active"
	TabHistory BorrowingTab = "history"
)

// Matches reports whether a transaction belongs on the tab. Active covers
// both active and overdue records; history holds returned ones only.
func (tab BorrowingTab) Matches(t Transaction) bool {
	switch tab {
	case TabActive:
		return t.Status == StatusActive || t.Status == StatusOverdue
	case TabHistory:
		return t.Status == StatusReturned
	}
	return false
}

// Apply returns the transactions that belong on the tab.
func (tab BorrowingTab) Apply(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if tab.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// ParseBorrowingTab maps user input to a tab, defaulting to active.
func ParseBorrowingTab(s string) BorrowingTab {
	if strings.EqualFold(s, string(TabHistory)) {
		return TabHistory
	}
	return TabActive
}

// CatalogTab selects what the member dashboard lists.
type CatalogTab string

const (
	TabAll       CatalogTab = "all"
	TabAvailable CatalogTab = "available"
	TabBorrowed  CatalogTab = "borrowed"
)

// ParseCatalogTab maps user input to a tab, defaulting to all.
func ParseCatalogTab(s string) CatalogTab {
	switch strings.ToLower(s) {
	case string(TabAvailable):
		return TabAvailable
	case string(TabBorrowed):
		return TabBorrowed
	}
	return TabAll
}

func matchesAny(q string, fields ...string) bool {
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
