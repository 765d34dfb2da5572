package library

import (
	"path/filepath"
	"time"

	"shelfd/lib/record"
)

// DefaultLoanDays is the loan period stamped onto networked borrow
// transactions when the caller leaves the due date unset. The offline
// dialogue uses its own, longer period (see cmd/local) - the two values are
// deliberately separate configuration.
const DefaultLoanDays = 5

// TransactionStore is the loan collection, backed by transactions.json.
type TransactionStore struct {
	store    *record.Store[Transaction, *Transaction]
	loanDays int
}

// NewTransactionStore opens (or bootstraps) the transaction collection under
// dir. loanDays is the default loan period in days; 0 means DefaultLoanDays.
func NewTransactionStore(dir string, loanDays int) (*TransactionStore, error) {
	s, err := record.NewStore[Transaction, *Transaction](filepath.Join(dir, "transactions.json"))
	if err != nil {
		return nil, err
	}
	if loanDays <= 0 {
		loanDays = DefaultLoanDays
	}
	return &TransactionStore{store: s, loanDays: loanDays}, nil
}

// Add stores a new loan. The borrow date is stamped with the current time;
// a zero due date is stamped with borrow date + the configured loan period,
// a non-zero due date is kept as given.
func (t *TransactionStore) Add(tx Transaction) (Transaction, error) {
	now := time.Now()
	tx.BorrowDate = now.Unix()
	if tx.DueDate == 0 {
		tx.DueDate = now.Add(time.Duration(t.loanDays) * 24 * time.Hour).Unix()
	}
	return t.store.Add(tx)
}

// Update replaces the stored transaction with the same id.
func (t *TransactionStore) Update(tx Transaction) error {
	return t.store.Update(tx)
}

// Remove deletes the transaction record with the given id.
func (t *TransactionStore) Remove(id int) error {
	return t.store.Remove(id)
}

// GetAll returns all transactions in insertion order.
func (t *TransactionStore) GetAll() ([]Transaction, error) {
	return t.store.GetAll()
}

// GetByID returns the transaction with the given id, or a zero transaction.
func (t *TransactionStore) GetByID(id int) (Transaction, error) {
	return t.store.GetByID(id)
}

// GetByUser returns all transactions of one user.
func (t *TransactionStore) GetByUser(userID int) ([]Transaction, error) {
	return t.filter(func(tx Transaction) bool { return tx.UserID == userID })
}

// GetByBook returns all transactions for one book.
func (t *TransactionStore) GetByBook(bookID int) ([]Transaction, error) {
	return t.filter(func(tx Transaction) bool { return tx.BookID == bookID })
}

// GetByStatus returns all transactions with the given status.
func (t *TransactionStore) GetByStatus(status BorrowStatus) ([]Transaction, error) {
	return t.filter(func(tx Transaction) bool { return tx.Status == status })
}

// GetByDateRange returns all transactions created within [start, end].
func (t *TransactionStore) GetByDateRange(start, end time.Time) ([]Transaction, error) {
	return t.filter(func(tx Transaction) bool {
		return tx.Created >= start.Unix() && tx.Created <= end.Unix()
	})
}

// GetByDateRangeAndUser returns one user's transactions created within
// [start, end].
func (t *TransactionStore) GetByDateRangeAndUser(start, end time.Time, userID int) ([]Transaction, error) {
	return t.filter(func(tx Transaction) bool {
		return tx.UserID == userID && tx.Created >= start.Unix() && tx.Created <= end.Unix()
	})
}

// GetByDueRange returns all transactions due within [start, end].
func (t *TransactionStore) GetByDueRange(start, end time.Time) ([]Transaction, error) {
	return t.filter(func(tx Transaction) bool {
		return tx.DueDate >= start.Unix() && tx.DueDate <= end.Unix()
	})
}

// GetByDueRangeAndUser returns one user's transactions due within
// [start, end].
func (t *TransactionStore) GetByDueRangeAndUser(start, end time.Time, userID int) ([]Transaction, error) {
	return t.filter(func(tx Transaction) bool {
		return tx.UserID == userID && tx.DueDate >= start.Unix() && tx.DueDate <= end.Unix()
	})
}

// OpenByUserAndBook returns the user's open (borrowed) transaction for a
// book, or a zero transaction if there is none. At most one open transaction
// per (user, book) pair exists - enforced by the borrow handler, not by an
// index.
func (t *TransactionStore) OpenByUserAndBook(userID, bookID int) (Transaction, error) {
	txs, err := t.filter(func(tx Transaction) bool {
		return tx.UserID == userID && tx.BookID == bookID && tx.Status == StatusBorrowed
	})
	if err != nil {
		return Transaction{}, err
	}
	if len(txs) == 0 {
		return Transaction{}, nil
	}
	return txs[0], nil
}

func (t *TransactionStore) filter(keep func(Transaction) bool) ([]Transaction, error) {
	txs, err := t.store.GetAll()
	if err != nil {
		return nil, err
	}
	var result []Transaction
	for _, tx := range txs {
		if keep(tx) {
			result = append(result, tx)
		}
	}
	return result, nil
}
