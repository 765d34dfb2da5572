// Package library holds the domain model of the library system - books,
// categories, users, loan transactions and audit entries - together with a
// typed store per collection built on the generic record store.
//
// Stores add the domain operations the raw record store does not have:
// email-unique registration and lockout-aware login on users, copy-count
// mutators and category snapshotting on books, the due-date stamp and the
// filter queries on transactions. Business rules that span collections (the
// borrow and return workflows, role and status transition rules) live in the
// protocol engine, not here.
package library
