package collab

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// codeBytes gives 24 bits of randomness, rendered as 6 uppercase hex
// characters. Collisions across concurrently active sessions are handled by
// regeneration, never by overwriting an existing entry.
const codeBytes = 3

const maxCodeAttempts = 32

// ErrCodeSpaceExhausted is returned when code generation keeps colliding.
// With 16M codes and sessions in the tens this does not happen in practice.
var ErrCodeSpaceExhausted = errors.New("could not allocate a unique session code")

// SessionRegistry is the process-wide mapping from session code to session.
// Creation and teardown are atomic with respect to concurrent lookups.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionRegistry constructs an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*Session)}
}

// Create allocates a fresh session code, builds a session with host as its
// sole participant, and registers it.
func (r *SessionRegistry) Create(host *Participant) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := generateSessionCode()
		if err != nil {
			return nil, fmt.Errorf("registry: generate code: %w", err)
		}
		if _, taken := r.sessions[code]; taken {
			continue
		}
		s := NewSession(code, host)
		r.sessions[code] = s
		return s, nil
	}
	return nil, ErrCodeSpaceExhausted
}

// Lookup resolves a session by code.
func (r *SessionRegistry) Lookup(code string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[code]
	return s, ok
}

// Remove deletes the session for the given code, if present.
func (r *SessionRegistry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, code)
}

// Len returns the number of active sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func generateSessionCode() (string, error) {
	b := make([]byte, codeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
