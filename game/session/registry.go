package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry is the shared table of live sessions, keyed by session ID. Its
// lock guards only the map; it is never held while a session's own fields
// are being mutated.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new waiting session with a generated ID.
func (r *Registry) Create(gameType string) *Session {
	sess := New(uuid.NewString(), gameType)

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	return sess
}

// Get retrieves a session by ID.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session from the registry. It does not destroy the
// session; callers destroy first, then delete.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// List returns all registered sessions.
func (r *Registry) List() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, sess)
	}
	return out
}

// ByConn returns the sessions where the connection holds a seat. The
// registry lock is released before the per-session seat checks so the two
// locks are never held together.
func (r *Registry) ByConn(connID string) []*Session {
	all := r.List()

	var out []*Session
	for _, sess := range all {
		if sess.HasSeat(connID) {
			out = append(out, sess)
		}
	}
	return out
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
