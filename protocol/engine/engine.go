package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shelfd/lib/library"
	"shelfd/lib/record"
	"shelfd/lib/search"
	"shelfd/protocol/common"
)

var Logger = common.GetLogger("engine")

// msgStoreFailure is the generic user-facing text for store I/O failures.
// The underlying error goes to the log, not to the client.
const msgStoreFailure = "System error: Unable to access database"

// Engine is the protocol state machine. It consumes one line of input per
// Handle call, mutates the connection's session and returns the text to send
// back. It never touches the socket layer and never terminates a dialogue on
// its own - every reachable condition produces a response string.
type Engine struct {
	books        *library.BookStore
	users        *library.UserStore
	categories   *library.CategoryStore
	transactions *library.TransactionStore
	sessions     *SessionTable
	ranker       *search.Ranker

	// loanPeriod, when non-zero, is stamped onto borrows as an explicit due
	// date. When zero the transaction store applies its own default period.
	// The two paths deliberately carry different configured values.
	loanPeriod time.Duration
}

// New creates an engine over the given stores and session table.
func New(
	books *library.BookStore,
	users *library.UserStore,
	categories *library.CategoryStore,
	transactions *library.TransactionStore,
	sessions *SessionTable,
	loanPeriod time.Duration,
) *Engine {
	return &Engine{
		books:        books,
		users:        users,
		categories:   categories,
		transactions: transactions,
		sessions:     sessions,
		ranker:       search.NewRanker(0),
		loanPeriod:   loanPeriod,
	}
}

// Handle processes one line from one connection. The session is created on
// first contact and destroyed by logout (or externally on disconnect).
func (e *Engine) Handle(connID, line string) string {
	sess := e.sessions.GetOrCreate(connID)
	line = strings.TrimSpace(line)

	if !sess.Authenticated {
		return e.handleUnauthenticated(sess, line)
	}
	if sess.State == StateAuthenticated {
		return e.dispatchCommand(sess, line)
	}
	return e.handleArgument(sess, line)
}

// --------------------------------------------------------------------------
// Login and Registration
// --------------------------------------------------------------------------

// handleUnauthenticated drives the pre-login dialogue: the entry menu and the
// two linear field-collection chains (login, registration).
func (e *Engine) handleUnauthenticated(sess *Session, line string) string {
	switch sess.State {
	case StateInitial:
		switch line {
		case "1":
			sess.State = StateLoginEmail
			return "Email: "
		case "2":
			sess.State = StateRegisterFirstName
			sess.Registration = library.User{}
			return "First Name: "
		case "3", "exit":
			e.sessions.Drop(sess.ID)
			return "Goodbye."
		default:
			return entryMenu
		}

	case StateLoginEmail:
		sess.LoginEmail = line
		sess.State = StateLoginPassword
		return "Password: "

	case StateLoginPassword:
		return e.finishLogin(sess, line)

	case StateRegisterFirstName:
		sess.Registration.FirstName = line
		sess.State = StateRegisterLastName
		return "Last Name: "

	case StateRegisterLastName:
		sess.Registration.LastName = line
		sess.State = StateRegisterAddress
		return "Address: "

	case StateRegisterAddress:
		sess.Registration.Address = line
		sess.State = StateRegisterPhone
		return "Phone Number: "

	case StateRegisterPhone:
		sess.Registration.PhoneNumber = line
		sess.State = StateRegisterEmail
		return "Email: "

	case StateRegisterEmail:
		sess.Registration.Email = line
		sess.State = StateRegisterPassword
		return "Password: "

	case StateRegisterPassword:
		return e.finishRegistration(sess, line)

	default:
		// Unauthenticated sessions never hold post-login states; reset.
		sess.State = StateInitial
		return entryMenu
	}
}

func (e *Engine) finishLogin(sess *Session, password string) string {
	sess.State = StateInitial
	email := sess.LoginEmail
	sess.LoginEmail = ""

	if err := e.users.Login(email, password); err != nil {
		if isStoreError(err) {
			Logger.Errorf("login failed: %v", err)
			return msgStoreFailure + "\n\n" + entryMenu
		}
		return err.Error() + "\n\n" + entryMenu
	}

	user, err := e.users.GetByEmail(email)
	if err != nil || user.ID == 0 {
		Logger.Errorf("login succeeded but account lookup failed: %v", err)
		return msgStoreFailure + "\n\n" + entryMenu
	}

	sess.User = user
	sess.Authenticated = true
	sess.State = StateAuthenticated
	return fmt.Sprintf("Welcome %s!\n", user.FirstName) + e.mainMenu(sess)
}

func (e *Engine) finishRegistration(sess *Session, password string) string {
	sess.State = StateInitial

	user := sess.Registration
	sess.Registration = library.User{}
	user.PasswordHash = password
	user.Status = library.UserActive
	user.Role = library.RoleRegular

	if _, err := e.users.Add(user); err != nil {
		if errors.Is(err, library.ErrEmailTaken) {
			return err.Error() + "\n\n" + entryMenu
		}
		Logger.Errorf("registration failed: %v", err)
		return msgStoreFailure + "\n\n" + entryMenu
	}
	return "Registration successful!\n\n" + entryMenu
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// done completes a waiting command: back to the main menu state, result text
// followed by the menu.
func (e *Engine) done(sess *Session, msg string) string {
	sess.State = StateAuthenticated
	sess.PendingDeleteID = 0
	return msg + "\n\n" + e.mainMenu(sess)
}

// requireAdmin checks the session's role. On failure it returns the denial
// response; the session state is left unchanged.
func (e *Engine) requireAdmin(sess *Session) (string, bool) {
	if sess.User.Role != library.RoleAdmin {
		return "Access denied.", false
	}
	return "", true
}

// refreshUser re-reads the session's account snapshot after a mutation.
func (e *Engine) refreshUser(sess *Session) {
	user, err := e.users.GetByID(sess.User.ID)
	if err != nil {
		Logger.Warningf("failed to refresh user %d: %v", sess.User.ID, err)
		return
	}
	if user.ID != 0 {
		sess.User = user
	}
}

// isStoreError distinguishes infrastructure failures from domain outcomes
// meant for the client.
func isStoreError(err error) bool {
	var storeErr *record.Error
	return errors.As(err, &storeErr)
}
