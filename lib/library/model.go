package library

import "time"

// --------------------------------------------------------------------------
// Enum Types
// --------------------------------------------------------------------------

// Enum fields are persisted as their integer ordinal, matching the on-disk
// format of the original data files. The orders below are therefore fixed.

// BookStatus is the lifecycle status of a book record.
type BookStatus int

const (
	BookPending BookStatus = iota
	BookActive
	BookDeleted
)

// BorrowStatus is the status of a loan transaction.
type BorrowStatus int

const (
	StatusBorrowed BorrowStatus = iota
	StatusReturned
	StatusUnavailable
)

// String returns the status name shown in transaction listings.
func (s BorrowStatus) String() string {
	switch s {
	case StatusBorrowed:
		return "borrowed"
	case StatusReturned:
		return "returned"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// UserRole is the role of a user account.
type UserRole int

const (
	RoleAdmin UserRole = iota
	RoleStaff
	RoleRegular
	RoleManager
)

// UserStatus is the lifecycle status of a user account.
type UserStatus int

const (
	UserPending UserStatus = iota
	UserActive
	UserInactive
	UserDeleted
)

// String returns the status name shown in user-facing messages.
func (s UserStatus) String() string {
	switch s {
	case UserPending:
		return "pending"
	case UserActive:
		return "active"
	case UserInactive:
		return "inactive"
	case UserDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Entities
// --------------------------------------------------------------------------

// Category is an independent collection. Books embed value copies of the
// categories they reference (see Book.Categories).
type Category struct {
	ID          int    `json:"CategoryId"`
	Name        string `json:"Name"`
	Description string `json:"Description"`
	Created     int64  `json:"DateCreated"`
}

func (c *Category) GetID() int   { return c.ID }
func (c *Category) SetID(id int) { c.ID = id }

func (c *Category) Touch(now time.Time, created bool) {
	if created {
		c.Created = now.Unix()
	}
}

// Book is a catalog record. Categories holds denormalized snapshots taken at
// write time; later category edits do not reach back into books.
type Book struct {
	ID         int        `json:"BookId"`
	Title      string     `json:"Name"`
	ISBN       string     `json:"Isbn"`
	Author     string     `json:"Author"`
	Publisher  string     `json:"Publisher"`
	Copies     int        `json:"NoOfCopies"`
	Created    int64      `json:"DateCreated"`
	Updated    int64      `json:"DateUpdated"`
	Status     BookStatus `json:"Status"`
	Categories []Category `json:"Categories"`
}

func (b *Book) GetID() int   { return b.ID }
func (b *Book) SetID(id int) { b.ID = id }

func (b *Book) Touch(now time.Time, created bool) {
	if created {
		b.Created = now.Unix()
	}
	b.Updated = now.Unix()
}

// User is an account record. BorrowedBooks and ReturnedBooks hold book ids as
// strings, in borrow/return order. A book id in BorrowedBooks corresponds to
// an open (borrowed) transaction for this user.
type User struct {
	ID            int        `json:"UserId"`
	FirstName     string     `json:"FirstName"`
	LastName      string     `json:"LastName"`
	PasswordHash  string     `json:"PasswordHash"`
	Email         string     `json:"Email"`
	Role          UserRole   `json:"Type"`
	Status        UserStatus `json:"Status"`
	CreatedBy     string     `json:"CreatedBy"`
	Created       int64      `json:"CreatedDate"`
	UpdatedBy     string     `json:"UpdatedBy"`
	Updated       int64      `json:"UpdatedDate"`
	Address       string     `json:"Address"`
	PhoneNumber   string     `json:"PhoneNumber"`
	AccessCount   int        `json:"AccessCount"`
	BorrowedBooks []string   `json:"BorrowedBooks"`
	ReturnedBooks []string   `json:"ReturnedBooks"`
}

func (u *User) GetID() int   { return u.ID }
func (u *User) SetID(id int) { u.ID = id }

func (u *User) Touch(now time.Time, created bool) {
	if created {
		u.Created = now.Unix()
	}
	u.Updated = now.Unix()
}

// Transaction is one loan of one book by one user. The due date is fixed at
// creation; ReturnDate and ActualReturnDate stay zero until the return.
type Transaction struct {
	ID               int          `json:"TransactionId"`
	UserID           int          `json:"UserId"`
	BookID           int          `json:"BookId"`
	Created          int64        `json:"CreatedDate"`
	BorrowDate       int64        `json:"BorrowDate"`
	DueDate          int64        `json:"DueDate"`
	ReturnDate       int64        `json:"ReturnDate"`
	ActualReturnDate int64        `json:"ActualReturnDate"`
	Status           BorrowStatus `json:"Status"`
}

func (t *Transaction) GetID() int   { return t.ID }
func (t *Transaction) SetID(id int) { t.ID = id }

func (t *Transaction) Touch(now time.Time, created bool) {
	if created {
		t.Created = now.Unix()
	}
}

// AuditEntry is one append-only audit log record.
type AuditEntry struct {
	ID          int    `json:"AuditLogId"`
	ClientIP    string `json:"ClientIp"`
	MachineName string `json:"MachineName"`
	Action      string `json:"Action"`
	Description string `json:"Description"`
	Created     int64  `json:"DateCreated"`
}

func (a *AuditEntry) GetID() int   { return a.ID }
func (a *AuditEntry) SetID(id int) { a.ID = id }

func (a *AuditEntry) Touch(now time.Time, created bool) {
	if created {
		a.Created = now.Unix()
	}
}
