package library

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"shelfd/lib/record"
)

// maxLoginAttempts is the failed-attempt count at which an account locks.
// The lock is a standing state check against the persisted counter, not a
// time-windowed lockout; only a password change clears it.
const maxLoginAttempts = 5

// Login outcomes. Message texts are user-facing.
var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrAccountDeleted     = errors.New("Account has been deleted")
	ErrAccountInactive    = errors.New("Account is inactive. Please contact administrator")
	ErrAccountPending     = errors.New("Account is pending activation")
	ErrAccountLocked      = errors.New("Account locked. Too many failed attempts. Please reset password")
	ErrEmailTaken         = errors.New("Registration failed. Email might already exist")
)

// UserStore is the account collection, backed by users.json.
type UserStore struct {
	store *record.Store[User, *User]
}

// NewUserStore opens (or bootstraps) the user collection under dir.
func NewUserStore(dir string) (*UserStore, error) {
	s, err := record.NewStore[User, *User](filepath.Join(dir, "users.json"))
	if err != nil {
		return nil, err
	}
	return &UserStore{store: s}, nil
}

// Add registers a new account. The PasswordHash field of the given user is
// taken as the plaintext password and replaced by the salted hash. Emails are
// unique across the whole collection, deleted accounts included.
func (u *UserStore) Add(user User) (User, error) {
	taken, err := u.EmailExists(user.Email)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, ErrEmailTaken
	}

	user.PasswordHash = SaltedHash(user.Email, user.PasswordHash)
	user.AccessCount = 0
	return u.store.Add(user)
}

// Login verifies an email/password pair. It returns nil on success and one of
// the exported sentinel errors otherwise (ErrInvalidCredentials is wrapped
// with the remaining attempt count while the account is not yet locked). The
// whole check-and-count sequence runs under one exclusive lock so that the
// persisted failed-attempt counter cannot lose increments.
func (u *UserStore) Login(email, password string) error {
	var result error

	err := u.store.Mutate(func(users []User) ([]User, bool, error) {
		idx := -1
		for i := range users {
			if users[i].Email == email {
				idx = i
				break
			}
		}
		if idx == -1 {
			result = ErrInvalidCredentials
			return users, false, nil
		}

		user := &users[idx]
		switch user.Status {
		case UserDeleted:
			result = ErrAccountDeleted
			return users, false, nil
		case UserInactive:
			result = ErrAccountInactive
			return users, false, nil
		case UserPending:
			result = ErrAccountPending
			return users, false, nil
		}

		if user.AccessCount >= maxLoginAttempts {
			result = ErrAccountLocked
			return users, false, nil
		}

		if SaltedHash(email, password) != user.PasswordHash {
			user.AccessCount++
			if user.AccessCount >= maxLoginAttempts {
				result = ErrAccountLocked
			} else {
				result = fmt.Errorf("%w. Attempts remaining: %d",
					ErrInvalidCredentials, maxLoginAttempts-user.AccessCount)
			}
			return users, true, nil
		}

		user.AccessCount = 0
		user.Updated = time.Now().Unix()
		return users, true, nil
	})
	if err != nil {
		return err
	}
	return result
}

// GetAll returns all accounts in insertion order.
func (u *UserStore) GetAll() ([]User, error) {
	return u.store.GetAll()
}

// GetByID returns the account with the given id, or a zero user (ID == 0).
func (u *UserStore) GetByID(id int) (User, error) {
	return u.store.GetByID(id)
}

// GetByEmail returns the account with the given email, or a zero user.
func (u *UserStore) GetByEmail(email string) (User, error) {
	users, err := u.store.GetAll()
	if err != nil {
		return User{}, err
	}
	for _, user := range users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, nil
}

// GetByStatus returns all accounts with the given status.
func (u *UserStore) GetByStatus(status UserStatus) ([]User, error) {
	users, err := u.store.GetAll()
	if err != nil {
		return nil, err
	}
	var result []User
	for _, user := range users {
		if user.Status == status {
			result = append(result, user)
		}
	}
	return result, nil
}

// Update replaces the stored account with the same id.
func (u *UserStore) Update(user User) error {
	return u.store.Update(user)
}

// UpdateStatus sets the account status and records who changed it.
func (u *UserStore) UpdateStatus(id int, status UserStatus, updatedBy string) error {
	user, err := u.GetByID(id)
	if err != nil {
		return err
	}
	if user.ID == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	user.Status = status
	user.UpdatedBy = updatedBy
	return u.Update(user)
}

// UpdatePassword replaces the credential with the hash of the new password
// and clears the failed-attempt counter.
func (u *UserStore) UpdatePassword(id int, newPassword string) error {
	user, err := u.GetByID(id)
	if err != nil {
		return err
	}
	if user.ID == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	user.PasswordHash = SaltedHash(user.Email, newPassword)
	user.AccessCount = 0
	return u.Update(user)
}

// SoftDelete marks the account deleted without removing the record.
func (u *UserStore) SoftDelete(id int, deletedBy string) error {
	return u.UpdateStatus(id, UserDeleted, deletedBy)
}

// HardDelete irreversibly removes the account record.
func (u *UserStore) HardDelete(id int) error {
	return u.store.Remove(id)
}

// AddBorrowedBook appends a book id to the account's borrowed list.
func (u *UserStore) AddBorrowedBook(id int, bookID string) error {
	user, err := u.GetByID(id)
	if err != nil {
		return err
	}
	if user.ID == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	user.BorrowedBooks = append(user.BorrowedBooks, bookID)
	return u.Update(user)
}

// AddReturnedBook moves a book id from the borrowed list to the returned
// list. The move is a single Update from the caller's perspective.
func (u *UserStore) AddReturnedBook(id int, bookID string) error {
	user, err := u.GetByID(id)
	if err != nil {
		return err
	}
	if user.ID == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	for i, borrowed := range user.BorrowedBooks {
		if borrowed == bookID {
			user.BorrowedBooks = append(user.BorrowedBooks[:i], user.BorrowedBooks[i+1:]...)
			user.ReturnedBooks = append(user.ReturnedBooks, bookID)
			return u.Update(user)
		}
	}
	return fmt.Errorf("book %s is not borrowed by user %d", bookID, id)
}

// EmailExists reports whether any account (of any status) uses the email.
func (u *UserStore) EmailExists(email string) (bool, error) {
	users, err := u.store.GetAll()
	if err != nil {
		return false, err
	}
	for _, user := range users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}
