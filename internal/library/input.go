package library

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// BookInput is the body of a create or update request.
type BookInput struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	Description     string `json:"description"`
	Publisher       string `json:"publisher"`
	ISBN            string `json:"isbn,omitempty"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies *int   `json:"available_copies,omitempty"`
}

// NewBookInput returns an empty form with one copy, as the add form starts.
func NewBookInput() BookInput {
	return BookInput{TotalCopies: 1}
}

// InputFromBook seeds an edit form from an existing book.
func InputFromBook(b Book) BookInput {
	return BookInput{
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Description: b.Description,
		Publisher:   b.Publisher,
		ISBN:        b.ISBN,
		TotalCopies: b.TotalCopies,
	}
}

// ForCreate sets available copies to the total, as a new book has none out.
func (in BookInput) ForCreate() BookInput {
	n := in.TotalCopies
	in.AvailableCopies = &n
	return in
}

// Trimmed strips surrounding whitespace from every text field.
func (in BookInput) Trimmed() BookInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Genre = strings.TrimSpace(in.Genre)
	in.Description = strings.TrimSpace(in.Description)
	in.Publisher = strings.TrimSpace(in.Publisher)
	in.ISBN = strings.TrimSpace(in.ISBN)
	return in
}

// Validate checks the fields the form requires before any request is sent.
func (in BookInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&in.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&in.TotalCopies,
			validation.Required.Error("total copies must be at least 1"),
			validation.Min(1).Error("total copies must be at least 1"),
		),
		validation.Field(&in.ISBN,
			validation.When(in.ISBN != "", is.ISBN.Error("invalid ISBN")),
		),
	)
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate requires a well-formed email and a password.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required.Error("email is required"), is.Email.Error("invalid email format")),
		validation.Field(&c.Password, validation.Required.Error("password is required")),
	)
}
