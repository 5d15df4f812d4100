package realtime

import (
	"sync"
)

// Broadcaster tracks every live connection on the server, session-bound or
// not, for server-wide fan-out. Session-scoped traffic goes through the
// session roster; this is only for signals that cross session boundaries,
// such as the live-reload ping to preview connections.
type Broadcaster struct {
	mu    sync.RWMutex
	conns map[*Connection]struct{}
}

// NewBroadcaster constructs an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{conns: make(map[*Connection]struct{})}
}

// Attach registers a connection for global fan-out.
func (b *Broadcaster) Attach(conn *Connection) {
	b.mu.Lock()
	b.conns[conn] = struct{}{}
	b.mu.Unlock()
}

// Detach removes a connection.
func (b *Broadcaster) Detach(conn *Connection) {
	b.mu.Lock()
	delete(b.conns, conn)
	b.mu.Unlock()
}

// BroadcastAll delivers payload to every tracked connection, best effort.
// A failed send never aborts delivery to the rest.
func (b *Broadcaster) BroadcastAll(payload []byte) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for conn := range b.conns {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// Count returns the number of tracked connections.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.conns)
}
