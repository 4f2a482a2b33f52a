package library

import "encoding/json"

// Role gates which screens are offered. Enforcement happens on the gateway.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Book is a catalog entry as returned by the gateway.
type Book struct {
	ID              int64  `json:"id" yaml:"id"`
	Title           string `json:"title" yaml:"title"`
	Author          string `json:"author" yaml:"author"`
	ISBN            string `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	Publisher       string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Genre           string `json:"genre,omitempty" yaml:"genre,omitempty"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	TotalCopies     int    `json:"total_copies" yaml:"total_copies"`
	AvailableCopies int    `json:"available_copies" yaml:"available_copies"`
	Status          string `json:"status,omitempty" yaml:"status,omitempty"`
	AddedBy         string `json:"added_by,omitempty" yaml:"added_by,omitempty"`
	CreatedAt       string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// UnmarshalJSON accepts the older field names some endpoints still send
// (quantity, available, category) and the nested user.name for AddedBy.
func (b *Book) UnmarshalJSON(data []byte) error {
	type plain Book
	var aux struct {
		plain
		Quantity  *int    `json:"quantity"`
		Available *int    `json:"available"`
		Category  *string `json:"category"`
		User      *struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = Book(aux.plain)
	if b.TotalCopies == 0 && aux.Quantity != nil {
		b.TotalCopies = *aux.Quantity
	}
	if b.AvailableCopies == 0 && aux.Available != nil {
		b.AvailableCopies = *aux.Available
	}
	if b.Genre == "" && aux.Category != nil {
		b.Genre = *aux.Category
	}
	if b.AddedBy == "" && aux.User != nil {
		b.AddedBy = aux.User.Name
	}
	return nil
}

// User is an account known to the gateway.
type User struct {
	ID           int64  `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Email        string `json:"email" yaml:"email"`
	Role         Role   `json:"role" yaml:"role"`
	Status       string `json:"status,omitempty" yaml:"status,omitempty"`
	CreatedAt    string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	ProfileImage string `json:"profile_image,omitempty" yaml:"profile_image,omitempty"`
}

// User statuses.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ToggledStatus returns the status a toggle would switch the user to.
func (u User) ToggledStatus() string {
	if u.Status == UserActive {
		return UserInactive
	}
	return UserActive
}

// Transaction statuses. The gateway computes them; the client only displays.
const (
	StatusActive   = "active"
	StatusOverdue  = "overdue"
	StatusReturned = "returned"
	StatusBorrowed = "borrowed"
)

// BookRef is the embedded book summary on a transaction.
type BookRef struct {
	ID     int64  `json:"id,omitempty"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn,omitempty"`
}

// UserRef is the embedded borrower summary on a transaction.
type UserRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Transaction is one borrowing record.
type Transaction struct {
	ID           int64   `json:"id"`
	BookID       int64   `json:"book_id,omitempty"`
	UserID       int64   `json:"user_id,omitempty"`
	Book         BookRef `json:"book"`
	User         UserRef `json:"user"`
	BorrowedDate string  `json:"borrowed_date"`
	DueDate      string  `json:"due_date"`
	ReturnedDate string  `json:"returned_date,omitempty"`
	Status       string  `json:"status"`
}

// Loan is a row of the signed-in user's borrowed-books list: the book plus
// the transaction that lent it.
type Loan struct {
	Book
	TransactionID int64  `json:"transaction_id"`
	LoanStatus    string `json:"-"`
	BorrowedAt    string `json:"borrowed_at,omitempty"`
	DueDate       string `json:"due_date,omitempty"`
	ReturnedDate  string `json:"returned_date,omitempty"`

	// DisplayKey keeps list rows unique within one fetch. It is not an identifier.
	DisplayKey string `json:"-"`
}

// UnmarshalJSON splits the shared payload between the embedded book and the
// loan fields; both carry a "status" key on the wire.
func (l *Loan) UnmarshalJSON(data []byte) error {
	var b Book
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	var aux struct {
		TransactionID int64  `json:"transaction_id"`
		Status        string `json:"status"`
		BorrowedAt    string `json:"borrowed_at"`
		DueDate       string `json:"due_date"`
		ReturnedDate  string `json:"returned_date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = Loan{
		Book:          b,
		TransactionID: aux.TransactionID,
		LoanStatus:    aux.Status,
		BorrowedAt:    aux.BorrowedAt,
		DueDate:       aux.DueDate,
		ReturnedDate:  aux.ReturnedDate,
	}
	l.Book.Status = ""
	return nil
}

// Stats are the admin dashboard counters.
type Stats struct {
	TotalBooks       int `json:"totalBooks"`
	TotalUsers       int `json:"totalUsers"`
	ActiveBorrowings int `json:"activeBorrowings"`
	OverdueBooks     int `json:"overdueBooks"`
}
