package library

import (
	"fmt"
	"path/filepath"
	"time"

	"shelfd/lib/record"
)

// BookStore is the catalog collection, backed by books.json.
type BookStore struct {
	store *record.Store[Book, *Book]
}

// NewBookStore opens (or bootstraps) the book collection under dir.
func NewBookStore(dir string) (*BookStore, error) {
	s, err := record.NewStore[Book, *Book](filepath.Join(dir, "books.json"))
	if err != nil {
		return nil, err
	}
	return &BookStore{store: s}, nil
}

// Add stores a new book. The given categories are copied into the book by
// value at write time - the snapshot does not follow later category edits.
func (b *BookStore) Add(book Book, categories ...Category) (Book, error) {
	for _, cat := range categories {
		book.Categories = append(book.Categories, cat)
	}
	return b.store.Add(book)
}

// GetAll returns all books in insertion order.
func (b *BookStore) GetAll() ([]Book, error) {
	return b.store.GetAll()
}

// GetByID returns the book with the given id, or a zero book (ID == 0) if
// there is none.
func (b *BookStore) GetByID(id int) (Book, error) {
	return b.store.GetByID(id)
}

// Update replaces the stored book with the same id.
func (b *BookStore) Update(book Book) error {
	return b.store.Update(book)
}

// Remove deletes the book record with the given id.
func (b *BookStore) Remove(id int) error {
	return b.store.Remove(id)
}

// AddCopies adds n copies to the book's copy count. The store does not refuse
// to go negative - callers that must not over-draw (the borrow handler)
// validate the count before calling.
func (b *BookStore) AddCopies(id, n int) error {
	return b.store.Mutate(func(books []Book) ([]Book, bool, error) {
		for i := range books {
			if books[i].ID == id {
				books[i].Copies += n
				books[i].Updated = time.Now().Unix()
				return books, true, nil
			}
		}
		return books, false, fmt.Errorf("book %d not found", id)
	})
}

// RemoveCopies removes n copies from the book's copy count. It is the exact
// mirror of AddCopies.
func (b *BookStore) RemoveCopies(id, n int) error {
	return b.AddCopies(id, -n)
}
