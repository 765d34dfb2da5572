package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// Store is a file-backed, insertion-ordered collection of records of type T.
// The whole collection lives in a single JSON array file. Every call acquires
// an advisory lock on the backing file: exclusive for mutations, shared for
// reads. The lock is held only for the duration of a single call - a caller
// doing read-modify-write across two calls gets no atomicity from the store.
type Store[T any, PT interface {
	*T
	Identifiable
}] struct {
	path string
	lock *flock.Flock
}

// NewStore creates a store backed by the given file. The parent directory is
// created if needed and a missing file is bootstrapped with an empty
// collection. This bootstrap is the only self-healing behavior the store has;
// malformed content found later propagates as an error.
func NewStore[T any, PT interface {
	*T
	Identifiable
}](path string) (*Store[T, PT], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, NewError(RetCIOError, fmt.Sprintf("create data directory: %v", err))
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, NewError(RetCIOError, fmt.Sprintf("bootstrap %s: %v", path, err))
		}
	} else if err != nil {
		return nil, NewError(RetCIOError, fmt.Sprintf("stat %s: %v", path, err))
	}

	return &Store[T, PT]{
		path: path,
		lock: flock.New(path),
	}, nil
}

// Path returns the location of the backing file.
func (s *Store[T, PT]) Path() string {
	return s.path
}

// --------------------------------------------------------------------------
// Public Methods
// --------------------------------------------------------------------------

// Add assigns the next free id to the record, stamps its timestamps, appends
// it to the collection and persists. The stored record is returned. Add fails
// only on lock or I/O errors, never because of record content.
func (s *Store[T, PT]) Add(rec T) (T, error) {
	err := s.Mutate(func(items []T) ([]T, bool, error) {
		PT(&rec).SetID(nextID[T, PT](items))
		PT(&rec).Touch(time.Now(), true)
		return append(items, rec), true, nil
	})
	return rec, err
}

// GetAll returns the full collection in insertion order.
func (s *Store[T, PT]) GetAll() ([]T, error) {
	if err := s.lock.RLock(); err != nil {
		var zero []T
		return zero, NewError(RetCLockError, fmt.Sprintf("shared lock %s: %v", s.path, err))
	}
	defer s.lock.Unlock()

	return s.load()
}

// GetByID returns the record with the given id. If no record matches, the
// zero value of T is returned - id 0 is never assigned, so callers check
// GetID() == 0 for "not found".
func (s *Store[T, PT]) GetByID(id int) (T, error) {
	var zero T

	items, err := s.GetAll()
	if err != nil {
		return zero, err
	}

	for _, item := range items {
		if PT(&item).GetID() == id {
			return item, nil
		}
	}
	return zero, nil
}

// Update replaces the stored record that carries the same id with the given
// one (a full replace, not a field merge) and re-stamps the updated
// timestamp. Updating an absent id is a silent no-op - callers that care must
// check existence first.
func (s *Store[T, PT]) Update(rec T) error {
	return s.Mutate(func(items []T) ([]T, bool, error) {
		for i := range items {
			if PT(&items[i]).GetID() == PT(&rec).GetID() {
				PT(&rec).Touch(time.Now(), false)
				items[i] = rec
				return items, true, nil
			}
		}
		return items, false, nil
	})
}

// Remove deletes the record with the given id. Removing an absent id
// succeeds without touching the file.
func (s *Store[T, PT]) Remove(id int) error {
	return s.Mutate(func(items []T) ([]T, bool, error) {
		for i := range items {
			if PT(&items[i]).GetID() == id {
				return append(items[:i], items[i+1:]...), true, nil
			}
		}
		return items, false, nil
	})
}

// Mutate runs fn on the loaded collection under the exclusive lock and
// persists the result when fn reports a change. It is the building block for
// compound operations (such as a login attempt that must read a record and
// write back a counter) that need a single consistent read-modify-write.
func (s *Store[T, PT]) Mutate(fn func(items []T) ([]T, bool, error)) error {
	if err := s.lock.Lock(); err != nil {
		return NewError(RetCLockError, fmt.Sprintf("exclusive lock %s: %v", s.path, err))
	}
	defer s.lock.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}

	items, changed, err := fn(items)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	return s.save(items)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// load reads and decodes the backing file. Callers must hold the lock.
func (s *Store[T, PT]) load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, NewError(RetCIOError, fmt.Sprintf("read %s: %v", s.path, err))
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, NewError(RetCEncodingError, fmt.Sprintf("decode %s: %v", s.path, err))
	}
	return items, nil
}

// save encodes and writes the full collection. Callers must hold the lock.
func (s *Store[T, PT]) save(items []T) error {
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return NewError(RetCEncodingError, fmt.Sprintf("encode %s: %v", s.path, err))
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return NewError(RetCIOError, fmt.Sprintf("write %s: %v", s.path, err))
	}
	return nil
}

// nextID computes max(existing ids) + 1, or 1 for an empty collection.
func nextID[T any, PT interface {
	*T
	Identifiable
}](items []T) int {
	next := 1
	for i := range items {
		if id := PT(&items[i]).GetID(); id >= next {
			next = id + 1
		}
	}
	return next
}
