package library

import (
	"testing"
	"time"
)

func newTestTransactionStore(t *testing.T, loanDays int) *TransactionStore {
	t.Helper()
	s, err := NewTransactionStore(t.TempDir(), loanDays)
	if err != nil {
		t.Fatalf("failed to create transaction store: %v", err)
	}
	return s
}

func TestTransactionDefaultDueDate(t *testing.T) {
	s := newTestTransactionStore(t, 0)

	tx, err := s.Add(Transaction{UserID: 1, BookID: 2, Status: StatusBorrowed})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if tx.BorrowDate == 0 {
		t.Fatal("expected borrow date to be stamped")
	}

	wantDue := time.Unix(tx.BorrowDate, 0).Add(DefaultLoanDays * 24 * time.Hour).Unix()
	if tx.DueDate != wantDue {
		t.Errorf("expected due date %d (%d days out), got %d", wantDue, DefaultLoanDays, tx.DueDate)
	}
}

func TestTransactionExplicitDueDateKept(t *testing.T) {
	s := newTestTransactionStore(t, 0)

	due := time.Now().Add(14 * 24 * time.Hour).Unix()
	tx, err := s.Add(Transaction{UserID: 1, BookID: 2, DueDate: due, Status: StatusBorrowed})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if tx.DueDate != due {
		t.Errorf("expected explicit due date %d to be kept, got %d", due, tx.DueDate)
	}
}

func TestTransactionConfiguredLoanPeriod(t *testing.T) {
	s := newTestTransactionStore(t, 30)

	tx, err := s.Add(Transaction{UserID: 1, BookID: 2, Status: StatusBorrowed})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	wantDue := time.Unix(tx.BorrowDate, 0).Add(30 * 24 * time.Hour).Unix()
	if tx.DueDate != wantDue {
		t.Errorf("expected due date 30 days out, got %d (want %d)", tx.DueDate, wantDue)
	}
}

func TestTransactionQueries(t *testing.T) {
	s := newTestTransactionStore(t, 0)

	seed := []Transaction{
		{UserID: 1, BookID: 10, Status: StatusBorrowed},
		{UserID: 1, BookID: 11, Status: StatusReturned},
		{UserID: 2, BookID: 10, Status: StatusBorrowed},
	}
	for _, tx := range seed {
		if _, err := s.Add(tx); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	byUser, err := s.GetByUser(1)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(byUser) != 2 {
		t.Errorf("expected 2 transactions for user 1, got %d", len(byUser))
	}

	byBook, err := s.GetByBook(10)
	if err != nil {
		t.Fatalf("GetByBook failed: %v", err)
	}
	if len(byBook) != 2 {
		t.Errorf("expected 2 transactions for book 10, got %d", len(byBook))
	}

	borrowed, err := s.GetByStatus(StatusBorrowed)
	if err != nil {
		t.Fatalf("GetByStatus failed: %v", err)
	}
	if len(borrowed) != 2 {
		t.Errorf("expected 2 borrowed transactions, got %d", len(borrowed))
	}

	now := time.Now()
	inRange, err := s.GetByDateRangeAndUser(now.Add(-time.Hour), now.Add(time.Hour), 2)
	if err != nil {
		t.Fatalf("GetByDateRangeAndUser failed: %v", err)
	}
	if len(inRange) != 1 || inRange[0].BookID != 10 {
		t.Errorf("expected user 2's transaction in range, got %v", inRange)
	}

	due, err := s.GetByDueRange(now, now.Add(DefaultLoanDays*24*time.Hour+time.Hour))
	if err != nil {
		t.Fatalf("GetByDueRange failed: %v", err)
	}
	if len(due) != 3 {
		t.Errorf("expected all 3 transactions due in range, got %d", len(due))
	}
}

func TestTransactionOpenByUserAndBook(t *testing.T) {
	s := newTestTransactionStore(t, 0)

	// A returned loan for the same pair must not count as open.
	if _, err := s.Add(Transaction{UserID: 1, BookID: 10, Status: StatusReturned}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	open, err := s.OpenByUserAndBook(1, 10)
	if err != nil {
		t.Fatalf("OpenByUserAndBook failed: %v", err)
	}
	if open.ID != 0 {
		t.Errorf("expected no open transaction, got id %d", open.ID)
	}

	added, err := s.Add(Transaction{UserID: 1, BookID: 10, Status: StatusBorrowed})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	open, err = s.OpenByUserAndBook(1, 10)
	if err != nil {
		t.Fatalf("OpenByUserAndBook failed: %v", err)
	}
	if open.ID != added.ID {
		t.Errorf("expected open transaction %d, got %d", added.ID, open.ID)
	}
}
