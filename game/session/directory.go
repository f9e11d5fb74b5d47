package session

import "sync"

// Directory maps live connections to the display name they announced and to
// the sessions they currently occupy. It is used for disconnect cleanup and
// private delivery routing.
type Directory struct {
	mu        sync.RWMutex
	names     map[string]string
	suggested map[string]string
	seats     map[string]map[string]struct{}
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		names:     make(map[string]string),
		suggested: make(map[string]string),
		seats:     make(map[string]map[string]struct{}),
	}
}

// Suggest records a provisional display name for a connection, announced at
// connect time. Bind falls back to it when the connection never announces a
// name of its own, so the identity shown in a match is the one the client
// was greeted with.
func (d *Directory) Suggest(connID, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.names[connID]; ok {
		return
	}
	d.suggested[connID] = name
}

// Bind records the display name for a connection. The first non-empty bind
// wins; the name is immutable for the connection's lifetime. An empty name
// binds the suggestion from Suggest, if one exists. Bind returns the
// effective name.
func (d *Directory) Bind(connID, name string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.names[connID]; ok {
		return existing
	}
	if name == "" {
		name = d.suggested[connID]
	}
	if name != "" {
		d.names[connID] = name
		delete(d.suggested, connID)
	}
	return name
}

// Name returns the display name bound to a connection.
func (d *Directory) Name(connID string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.names[connID]
	return name, ok
}

// Join records that the connection holds a seat in the session.
func (d *Directory) Join(connID, sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seats[connID] == nil {
		d.seats[connID] = make(map[string]struct{})
	}
	d.seats[connID][sessionID] = struct{}{}
}

// Leave removes the session from the connection's seat set.
func (d *Directory) Leave(connID, sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if set, ok := d.seats[connID]; ok {
		delete(set, sessionID)
		if len(set) == 0 {
			delete(d.seats, connID)
		}
	}
}

// SessionsOf returns the IDs of the sessions where the connection holds a
// seat.
func (d *Directory) SessionsOf(connID string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	set := d.seats[connID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// Remove forgets a connection entirely: its name binding, any pending
// suggestion, and its seat set.
func (d *Directory) Remove(connID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.names, connID)
	delete(d.suggested, connID)
	delete(d.seats, connID)
}

// Count returns the number of connections with a bound name.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.names)
}
