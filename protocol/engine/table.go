package engine

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// SessionTable is the process-wide registry of live sessions, keyed by
// connection identifier. It is safe for concurrent use by any number of
// connection handlers; its synchronization is independent of the stores'
// file locks.
type SessionTable struct {
	sessions *xsync.MapOf[string, *Session]
}

// NewSessionTable creates an empty session table.
func NewSessionTable() *SessionTable {
	return &SessionTable{
		sessions: xsync.NewMapOf[string, *Session](),
	}
}

// GetOrCreate returns the session of the given connection, creating a fresh
// one in StateInitial on first contact.
func (t *SessionTable) GetOrCreate(connID string) *Session {
	sess, _ := t.sessions.LoadOrCompute(connID, func() *Session {
		return &Session{
			ID:    connID,
			State: StateInitial,
		}
	})
	return sess
}

// Get returns the session of the given connection, or nil.
func (t *SessionTable) Get(connID string) *Session {
	sess, _ := t.sessions.Load(connID)
	return sess
}

// Drop destroys the session of the given connection. Called on logout and on
// disconnect; a session whose connection silently vanished lingers until one
// of the two happens.
func (t *SessionTable) Drop(connID string) {
	t.sessions.Delete(connID)
}

// Len returns the number of live sessions.
func (t *SessionTable) Len() int {
	return t.sessions.Size()
}
