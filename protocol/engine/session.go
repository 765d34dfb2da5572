package engine

import (
	"shelfd/lib/library"
)

// State is the position of a session inside the protocol dialogue.
type State int

const (
	// StateInitial is the state of a fresh, unauthenticated session.
	StateInitial State = iota

	// Login chain.
	StateLoginEmail
	StateLoginPassword

	// Registration chain.
	StateRegisterFirstName
	StateRegisterLastName
	StateRegisterAddress
	StateRegisterPhone
	StateRegisterEmail
	StateRegisterPassword

	// StateAuthenticated is the main menu state; lines are command codes.
	StateAuthenticated

	// Waiting states branch off StateAuthenticated for commands that need
	// arguments and return to it when the argument (chain) completes.
	StateWaitingSearchTerm
	StateWaitingBookID
	StateWaitingBookName
	StateWaitingBookISBN
	StateWaitingBookAuthor
	StateWaitingBookPublisher
	StateWaitingBookCopies
	StateWaitingCategoryName
	StateWaitingCategoryDescription
	StateWaitingUserID
	StateWaitingNewPassword
)

// Session is the per-connection dialogue state. It is created on the first
// line a connection sends and destroyed on logout or disconnect; it is never
// persisted and never shared between connections.
type Session struct {
	// ID is the owning connection's identifier.
	ID string

	State State

	// LastCommand is the menu code that put the session into its current
	// waiting state. It disambiguates a pending numeric answer (the same
	// StateWaitingBookID serves borrow, return and remove).
	LastCommand int

	Authenticated bool

	// User is a snapshot of the authenticated account. Handlers that mutate
	// the account refresh it from the store.
	User library.User

	// Scratch fields of partially entered multi-step forms.
	LoginEmail      string
	Registration    library.User
	BookForm        library.Book
	CategoryForm    library.Category
	PendingDeleteID int
}
