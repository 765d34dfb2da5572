// Package audit provides the asynchronous audit-log writer. Connection
// handlers log every request and disconnect through it without waiting for
// the file-backed audit store.
package audit
