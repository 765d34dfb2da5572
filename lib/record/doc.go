// Package record provides a generic, file-backed collection store with
// advisory locking. It is the persistence layer under every entity collection
// of the library system (books, users, categories, transactions, audit log).
//
// The package focuses on:
//   - One JSON array file per collection, replaced wholesale on every write
//   - Advisory flock(2) locking: exclusive for mutations, shared for reads
//   - Monotonic integer ids assigned on insert (max + 1, id 0 = "not found")
//
// Key Components:
//
//   - Store: The generic collection store. Each call locks, loads the full
//     collection, operates and persists. Individual calls are internally
//     consistent; sequences of calls are not - workflows that read a record
//     and later write it back race against concurrent writers by design.
//
//   - Identifiable: Implemented by pointers to record types, exposing id and
//     audit-timestamp fields to the store.
//
//   - Error System: Typed return codes (I/O, lock, encoding) wrapped in a
//     structured Error, so callers can distinguish infrastructure failures
//     from domain conditions like "not found" (which is not an error here).
package record
