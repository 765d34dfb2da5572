package library

import (
	"path/filepath"

	"shelfd/lib/record"
)

// CategoryStore is the category collection, backed by categories.json.
// Removing a category does not touch the snapshots embedded in books.
type CategoryStore struct {
	store *record.Store[Category, *Category]
}

// NewCategoryStore opens (or bootstraps) the category collection under dir.
func NewCategoryStore(dir string) (*CategoryStore, error) {
	s, err := record.NewStore[Category, *Category](filepath.Join(dir, "categories.json"))
	if err != nil {
		return nil, err
	}
	return &CategoryStore{store: s}, nil
}

func (c *CategoryStore) Add(cat Category) (Category, error) {
	return c.store.Add(cat)
}

func (c *CategoryStore) GetAll() ([]Category, error) {
	return c.store.GetAll()
}

func (c *CategoryStore) GetByID(id int) (Category, error) {
	return c.store.GetByID(id)
}

func (c *CategoryStore) Remove(id int) error {
	return c.store.Remove(id)
}
