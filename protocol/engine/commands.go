package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"shelfd/lib/library"
)

// --------------------------------------------------------------------------
// Authenticated Dispatch
// --------------------------------------------------------------------------

// dispatchCommand interprets a line in the main menu state as a numeric
// command code. Unparsable or unrecognized codes silently re-display the
// menu. Administrative codes are role-checked without changing state.
func (e *Engine) dispatchCommand(sess *Session, line string) string {
	code, err := strconv.Atoi(line)
	if err != nil {
		return e.mainMenu(sess)
	}

	metrics.GetOrCreateCounter(fmt.Sprintf(`shelfd_commands_total{code="%d"}`, code)).Inc()

	switch code {
	case 1:
		sess.LastCommand = code
		sess.State = StateWaitingSearchTerm
		return "Enter search term: "

	case 2, 3:
		sess.LastCommand = code
		sess.State = StateWaitingBookID
		return "Enter Book ID: "

	case 4:
		return e.viewBorrowed(sess)

	case 5:
		return e.viewReturned(sess)

	case 6:
		if msg, ok := e.requireAdmin(sess); !ok {
			return msg
		}
		sess.LastCommand = code
		sess.State = StateWaitingBookName
		sess.BookForm = library.Book{}
		return "Enter Book Title: "

	case 7:
		if msg, ok := e.requireAdmin(sess); !ok {
			return msg
		}
		sess.LastCommand = code
		sess.State = StateWaitingBookID
		return "Enter Book ID to remove: "

	case 8:
		if msg, ok := e.requireAdmin(sess); !ok {
			return msg
		}
		sess.LastCommand = code
		sess.State = StateWaitingCategoryName
		sess.CategoryForm = library.Category{}
		return "Enter Category Name: "

	case 9:
		if msg, ok := e.requireAdmin(sess); !ok {
			return msg
		}
		return userMgmtMenu

	case 10:
		e.sessions.Drop(sess.ID)
		return "Logged out successfully."

	case 11, 12, 13, 14, 15, 16, 18:
		if msg, ok := e.requireAdmin(sess); !ok {
			return msg
		}
		sess.LastCommand = code
		sess.State = StateWaitingUserID
		sess.PendingDeleteID = 0
		return "Enter User ID: "

	case 17:
		if msg, ok := e.requireAdmin(sess); !ok {
			return msg
		}
		return e.viewAllTransactions(sess)

	case 20:
		sess.LastCommand = code
		sess.State = StateWaitingNewPassword
		return "Enter new password: "

	case 0:
		return e.mainMenu(sess)

	default:
		return e.mainMenu(sess)
	}
}

// handleArgument interprets a line as the argument awaited by the current
// state and completes (or advances) the pending command.
func (e *Engine) handleArgument(sess *Session, line string) string {
	switch sess.State {
	case StateWaitingSearchTerm:
		return e.finishSearch(sess, line)

	case StateWaitingBookID:
		id, err := strconv.Atoi(line)
		if err != nil {
			return e.done(sess, "Invalid book id.")
		}
		switch sess.LastCommand {
		case 2:
			return e.finishBorrow(sess, id)
		case 3:
			return e.finishReturn(sess, id)
		case 7:
			return e.finishRemoveBook(sess, id)
		default:
			return e.done(sess, "Invalid book id.")
		}

	case StateWaitingBookName:
		sess.BookForm.Title = line
		sess.State = StateWaitingBookISBN
		return "Enter ISBN: "

	case StateWaitingBookISBN:
		sess.BookForm.ISBN = line
		sess.State = StateWaitingBookAuthor
		return "Enter Author: "

	case StateWaitingBookAuthor:
		sess.BookForm.Author = line
		sess.State = StateWaitingBookPublisher
		return "Enter Publisher: "

	case StateWaitingBookPublisher:
		sess.BookForm.Publisher = line
		sess.State = StateWaitingBookCopies
		return "Enter Number of Copies: "

	case StateWaitingBookCopies:
		return e.finishAddBook(sess, line)

	case StateWaitingCategoryName:
		sess.CategoryForm.Name = line
		sess.State = StateWaitingCategoryDescription
		return "Enter Category Description: "

	case StateWaitingCategoryDescription:
		return e.finishAddCategory(sess, line)

	case StateWaitingUserID:
		return e.finishUserCommand(sess, line)

	case StateWaitingNewPassword:
		return e.finishPasswordChange(sess, line)

	default:
		// Unknown state: recover to the main menu rather than wedge the session.
		return e.done(sess, "")
	}
}

// --------------------------------------------------------------------------
// Command Handlers
// --------------------------------------------------------------------------

func (e *Engine) finishSearch(sess *Session, query string) string {
	catalog, err := e.books.GetAll()
	if err != nil {
		Logger.Errorf("search failed: %v", err)
		return e.done(sess, msgStoreFailure)
	}

	matches := e.ranker.Rank(query, catalog, 0)
	if len(matches) == 0 {
		return e.done(sess, "No books found.")
	}

	var sb strings.Builder
	for _, match := range matches {
		fmt.Fprintf(&sb, "ID: %d\nTitle: %s\nAuthor: %s\nAvailable Copies: %d\n---------------\n",
			match.Book.ID, match.Book.Title, match.Book.Author, match.Book.Copies)
	}
	return e.done(sess, strings.TrimRight(sb.String(), "\n"))
}

// finishBorrow runs the borrow workflow. The copy check and the decrement are
// separate store calls: two concurrent borrows of the last copy can both pass
// the check and drive the count negative. This mirrors the behavior of the
// system this one replaces; closing the window would need a per-book critical
// section around the whole sequence.
func (e *Engine) finishBorrow(sess *Session, bookID int) string {
	book, err := e.books.GetByID(bookID)
	if err != nil {
		Logger.Errorf("borrow lookup failed: %v", err)
		return e.done(sess, msgStoreFailure)
	}
	if book.ID == 0 {
		return e.done(sess, "Book not found.")
	}
	if book.Copies <= 0 {
		return e.done(sess, "No copies available.")
	}

	// At most one open loan per (user, book) pair.
	open, err := e.transactions.OpenByUserAndBook(sess.User.ID, book.ID)
	if err != nil {
		Logger.Errorf("borrow lookup failed: %v", err)
		return e.done(sess, msgStoreFailure)
	}
	if open.ID != 0 {
		return e.done(sess, "You have already borrowed this book.")
	}

	tx := library.Transaction{
		UserID: sess.User.ID,
		BookID: book.ID,
		Status: library.StatusBorrowed,
	}
	if e.loanPeriod > 0 {
		tx.DueDate = time.Now().Add(e.loanPeriod).Unix()
	}

	if _, err := e.transactions.Add(tx); err != nil {
		Logger.Errorf("borrow failed: %v", err)
		return e.done(sess, "Failed to borrow book.")
	}
	if err := e.books.RemoveCopies(book.ID, 1); err != nil {
		Logger.Errorf("borrow copy decrement failed: %v", err)
		return e.done(sess, "Failed to borrow book.")
	}
	if err := e.users.AddBorrowedBook(sess.User.ID, strconv.Itoa(book.ID)); err != nil {
		Logger.Errorf("borrow list update failed: %v", err)
		return e.done(sess, "Failed to borrow book.")
	}

	e.refreshUser(sess)
	return e.done(sess, "Book borrowed successfully!")
}

func (e *Engine) finishReturn(sess *Session, bookID int) string {
	tx, err := e.transactions.OpenByUserAndBook(sess.User.ID, bookID)
	if err != nil {
		Logger.Errorf("return lookup failed: %v", err)
		return e.done(sess, msgStoreFailure)
	}
	if tx.ID == 0 {
		return e.done(sess, "You haven't borrowed this book.")
	}

	now := time.Now().Unix()
	tx.Status = library.StatusReturned
	tx.ReturnDate = now
	tx.ActualReturnDate = now

	if err := e.transactions.Update(tx); err != nil {
		Logger.Errorf("return failed: %v", err)
		return e.done(sess, "Failed to return book.")
	}
	if err := e.books.AddCopies(bookID, 1); err != nil {
		Logger.Errorf("return copy increment failed: %v", err)
		return e.done(sess, "Failed to return book.")
	}
	if err := e.users.AddReturnedBook(sess.User.ID, strconv.Itoa(bookID)); err != nil {
		Logger.Errorf("return list update failed: %v", err)
		return e.done(sess, "Failed to return book.")
	}

	e.refreshUser(sess)
	return e.done(sess, "Book returned successfully!")
}

func (e *Engine) viewBorrowed(sess *Session) string {
	txs, err := e.transactions.GetByUser(sess.User.ID)
	if err != nil {
		Logger.Errorf("borrowed listing failed: %v", err)
		return e.done(sess, msgStoreFailure)
	}

	var sb strings.Builder
	for _, tx := range txs {
		if tx.Status != library.StatusBorrowed {
			continue
		}
		book, err := e.books.GetByID(tx.BookID)
		if err != nil {
			Logger.Errorf("borrowed listing failed: %v", err)
			return e.done(sess, msgStoreFailure)
		}
		fmt.Fprintf(&sb, "Book: %s\nDue Date: %s\n---------------\n",
			book.Title, formatDate(tx.DueDate))
	}
	if sb.Len() == 0 {
		return e.done(sess, "No borrowed books.")
	}
	return e.done(sess, strings.TrimRight(sb.String(), "\n"))
}

func (e *Engine) viewReturned(sess *Session) string {
	user, err := e.users.GetByID(sess.User.ID)
	if err != nil {
		Logger.Errorf("returned listing failed: %v", err)
		return e.done(sess, msgStoreFailure)
	}
	if len(user.ReturnedBooks) == 0 {
		return e.done(sess, "No returned books.")
	}

	var sb strings.Builder
	for _, bookID := range user.ReturnedBooks {
		id, err := strconv.Atoi(bookID)
		if err != nil {
			continue
		}
		book, err := e.books.GetByID(id)
		if err != nil {
			Logger.Errorf("returned listing failed: %v", err)
			return e.done(sess, msgStoreFailure)
		}
		title := book.Title
		if book.ID == 0 {
			title = "(removed)"
		}
		fmt.Fprintf(&sb, "Book: %s (ID %s)\n", title, bookID)
	}
	return e.done(sess, strings.TrimRight(sb.String(), "\n"))
}

func (e *Engine) finishAddBook(sess *Session, copiesLine string) string {
	copies, err := strconv.Atoi(copiesLine)
	if err != nil || copies < 0 {
		return e.done(sess, "Invalid number of copies.")
	}

	book := sess.BookForm
	sess.BookForm = library.Book{}
	book.Copies = copies
	book.Status = library.BookActive

	if _, err := e.books.Add(book); err != nil {
		Logger.Errorf("add book failed: %v", err)
		return e.done(sess, "Failed to add book.")
	}
	return e.done(sess, "Book added successfully!")
}

func (e *Engine) finishRemoveBook(sess *Session, bookID int) string {
	book, err := e.books.GetByID(bookID)
	if err != nil {
		Logger.Errorf("remove book failed: %v", err)
		return e.done(sess, msgStoreFailure)
	}
	if book.ID == 0 {
		return e.done(sess, "Book not found.")
	}

	if err := e.books.Remove(bookID); err != nil {
		Logger.Errorf("remove book failed: %v", err)
		return e.done(sess, "Failed to remove book.")
	}
	return e.done(sess, "Book removed successfully!")
}

func (e *Engine) finishAddCategory(sess *Session, description string) string {
	cat := sess.CategoryForm
	sess.CategoryForm = library.Category{}
	cat.Description = description

	if _, err := e.categories.Add(cat); err != nil {
		Logger.Errorf("add category failed: %v", err)
		return e.done(sess, "Failed to add category.")
	}
	return e.done(sess, "Category added successfully!")
}

func (e *Engine) finishPasswordChange(sess *Session, password string) string {
	if err := library.CheckPasswordPolicy(password); err != nil {
		return e.done(sess, strings.ToUpper(err.Error()[:1])+err.Error()[1:])
	}

	if err := e.users.UpdatePassword(sess.User.ID, password); err != nil {
		Logger.Errorf("password change failed: %v", err)
		return e.done(sess, msgStoreFailure)
	}

	e.refreshUser(sess)
	return e.done(sess, "Password changed successfully.")
}

// formatDate renders a unix timestamp for listings; zero stays empty.
func formatDate(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).Format("2006-01-02")
}
