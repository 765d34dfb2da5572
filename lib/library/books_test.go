package library

import (
	"testing"
)

func newTestBookStore(t *testing.T) *BookStore {
	t.Helper()
	s, err := NewBookStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create book store: %v", err)
	}
	return s
}

func TestBookAddWithCategories(t *testing.T) {
	dir := t.TempDir()
	books, err := NewBookStore(dir)
	if err != nil {
		t.Fatalf("failed to create book store: %v", err)
	}
	categories, err := NewCategoryStore(dir)
	if err != nil {
		t.Fatalf("failed to create category store: %v", err)
	}

	cat, err := categories.Add(Category{Name: "Fiction", Description: "Novels"})
	if err != nil {
		t.Fatalf("failed to add category: %v", err)
	}

	book, err := books.Add(Book{Title: "1984", Author: "George Orwell", Copies: 3, Status: BookActive}, cat)
	if err != nil {
		t.Fatalf("failed to add book: %v", err)
	}
	if len(book.Categories) != 1 || book.Categories[0].Name != "Fiction" {
		t.Fatalf("expected embedded category snapshot, got %v", book.Categories)
	}

	// The embedded copy is a snapshot: editing the category collection does
	// not reach back into the book.
	if err := categories.Remove(cat.ID); err != nil {
		t.Fatalf("failed to remove category: %v", err)
	}
	got, err := books.GetByID(book.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Categories) != 1 || got.Categories[0].Name != "Fiction" {
		t.Errorf("expected snapshot to survive category removal, got %v", got.Categories)
	}
}

func TestBookCopies(t *testing.T) {
	s := newTestBookStore(t)

	book, err := s.Add(Book{Title: "Dune", Copies: 2})
	if err != nil {
		t.Fatalf("failed to add book: %v", err)
	}

	if err := s.RemoveCopies(book.ID, 1); err != nil {
		t.Fatalf("RemoveCopies failed: %v", err)
	}
	got, _ := s.GetByID(book.ID)
	if got.Copies != 1 {
		t.Errorf("expected 1 copy, got %d", got.Copies)
	}

	if err := s.AddCopies(book.ID, 3); err != nil {
		t.Fatalf("AddCopies failed: %v", err)
	}
	got, _ = s.GetByID(book.ID)
	if got.Copies != 4 {
		t.Errorf("expected 4 copies, got %d", got.Copies)
	}

	// The copy count checks belong to the caller, not the store.
	if err := s.RemoveCopies(book.ID, 10); err != nil {
		t.Fatalf("RemoveCopies failed: %v", err)
	}
	got, _ = s.GetByID(book.ID)
	if got.Copies != -6 {
		t.Errorf("expected -6 copies, got %d", got.Copies)
	}
}

func TestBookCopiesUnknownID(t *testing.T) {
	s := newTestBookStore(t)
	if err := s.AddCopies(42, 1); err == nil {
		t.Error("expected error adjusting copies of an unknown book")
	}
}
