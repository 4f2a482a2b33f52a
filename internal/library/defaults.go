package library

import (
	"fmt"
	"time"
)

// Placeholders shown for fields the gateway left empty.
const (
	NoTitle       = "No Title"
	UnknownAuthor = "Unknown Author"
	Uncategorized = "Uncategorized"
	NoDescription = "No description available"
	DefaultAdder  = "Admin"
)

// WithDefaults returns a copy of b with display placeholders filled in.
func (b Book) WithDefaults() Book {
	if b.Title == "" {
		b.Title = NoTitle
	}
	if b.Author == "" {
		b.Author = UnknownAuthor
	}
	if b.Genre == "" {
		b.Genre = Uncategorized
	}
	if b.Description == "" {
		b.Description = NoDescription
	}
	if b.AddedBy == "" {
		b.AddedBy = DefaultAdder
	}
	if b.TotalCopies < 0 {
		b.TotalCopies = 0
	}
	if b.AvailableCopies < 0 {
		b.AvailableCopies = 0
	}
	return b
}

// Available reports whether at least one copy can be borrowed.
func (b Book) Available() bool {
	return b.AvailableCopies > 0
}

// WithDefaults fills loan placeholders and stamps a display key.
// now only feeds the key, so two fetches never share keys.
func (l Loan) WithDefaults(now time.Time) Loan {
	l.Book = l.Book.WithDefaults()
	if l.TransactionID == 0 {
		l.TransactionID = l.ID
	}
	if l.LoanStatus == "" {
		l.LoanStatus = StatusBorrowed
	}
	l.DisplayKey = fmt.Sprintf("%d-%d-%d", l.ID, l.TransactionID, now.UnixNano())
	return l
}

// Returned reports whether the loan is closed.
func (l Loan) Returned() bool {
	return l.LoanStatus == StatusReturned || l.ReturnedDate != ""
}

// Active reports whether a transaction still holds the book out.
func (t Transaction) Active() bool {
	return t.Status != StatusReturned
}
