package matchmaking

import (
	"sync"
	"time"
)

// Ticket is a parked match request waiting for an opponent.
type Ticket struct {
	ConnID     string
	Name       string
	GameType   string
	EnqueuedAt time.Time
}

// Queue holds at most one parked ticket per game type. All operations are
// atomic under the queue's own lock; the lock is never held across calls
// into other components.
type Queue struct {
	mu     sync.Mutex
	parked map[string]*Ticket
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		parked: make(map[string]*Ticket),
	}
}

// Take resolves a match request. If a ticket from a different connection is
// parked for the game type, it is consumed and returned with matched=true;
// the caller seats the returned ticket first (it was parked first). Otherwise
// the requester is installed as the new parked ticket, replacing any stale
// ticket of its own, and matched is false.
func (q *Queue) Take(gameType, connID, name string) (opponent *Ticket, matched bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.parked[gameType]; ok && t.ConnID != connID {
		delete(q.parked, gameType)
		return t, true
	}

	q.parked[gameType] = &Ticket{
		ConnID:     connID,
		Name:       name,
		GameType:   gameType,
		EnqueuedAt: time.Now(),
	}
	return nil, false
}

// Remove drops any parked tickets owned by the connection. It reports
// whether something was removed.
func (q *Queue) Remove(connID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	removed := false
	for gameType, t := range q.parked {
		if t.ConnID == connID {
			delete(q.parked, gameType)
			removed = true
		}
	}
	return removed
}

// Waiting reports whether a ticket is parked for the game type.
func (q *Queue) Waiting(gameType string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.parked[gameType]
	return ok
}
