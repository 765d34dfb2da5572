package engine

import (
	"fmt"
	"sync"
	"testing"
)

func TestSessionTable(t *testing.T) {
	table := NewSessionTable()

	if table.Get("c1") != nil {
		t.Error("expected no session before first contact")
	}

	sess := table.GetOrCreate("c1")
	if sess.ID != "c1" || sess.State != StateInitial {
		t.Errorf("expected a fresh session in the initial state, got %+v", sess)
	}

	// Repeated lookups return the same session.
	sess.State = StateAuthenticated
	if again := table.GetOrCreate("c1"); again != sess {
		t.Error("expected the same session instance")
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 session, got %d", table.Len())
	}

	table.Drop("c1")
	if table.Get("c1") != nil {
		t.Error("expected the session to be gone")
	}
	if table.Len() != 0 {
		t.Errorf("expected 0 sessions, got %d", table.Len())
	}

	// Dropping an absent session is harmless.
	table.Drop("c1")
}

func TestSessionTableConcurrent(t *testing.T) {
	table := NewSessionTable()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			connID := fmt.Sprintf("conn-%d", n%4)
			for j := 0; j < 100; j++ {
				sess := table.GetOrCreate(connID)
				if sess.ID != connID {
					t.Errorf("got session %q for connection %q", sess.ID, connID)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if table.Len() != 4 {
		t.Errorf("expected 4 sessions, got %d", table.Len())
	}
}
