package audit

import (
	"sync"

	"shelfd/lib/library"
)

// Logger is a fire-and-forget asynchronous audit sink. Callers enqueue
// entries and return immediately; a single background worker drains the
// queue into the audit store. The queue is unbounded - if the store stalls
// it silently grows.
type Logger struct {
	store *library.AuditStore

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []library.AuditEntry
	running bool
	done    chan struct{}
}

// NewLogger creates a logger and starts its drain worker.
func NewLogger(store *library.AuditStore) *Logger {
	l := &Logger{
		store:   store,
		running: true,
		done:    make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)

	go l.drain()
	return l
}

// LogAsync enqueues an entry and returns immediately. Entries enqueued after
// Close are dropped.
func (l *Logger) LogAsync(entry library.AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return
	}
	l.queue = append(l.queue, entry)
	l.cond.Signal()
}

// Close drains the remaining queue and stops the worker.
func (l *Logger) Close() {
	l.mu.Lock()
	l.running = false
	l.cond.Signal()
	l.mu.Unlock()

	<-l.done
}

// drain writes queued entries through the audit store until the logger is
// closed and the queue is empty.
func (l *Logger) drain() {
	defer close(l.done)

	l.mu.Lock()
	for {
		for len(l.queue) == 0 && l.running {
			l.cond.Wait()
		}
		if len(l.queue) == 0 && !l.running {
			l.mu.Unlock()
			return
		}

		entry := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		// Store write happens outside the queue lock so enqueuers are
		// never blocked on file I/O.
		_, _ = l.store.Add(entry)

		l.mu.Lock()
	}
}
