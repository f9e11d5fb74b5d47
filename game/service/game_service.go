package service

import (
	"context"

	"github.com/playgrid/playgrid/game/session"
	"github.com/playgrid/playgrid/player"
)

// GameService defines the operations driven by inbound client events.
type GameService interface {
	// Connect announces a new connection and returns its suggested guest
	// display name. The suggestion binds on the first RequestMatch unless
	// the client announces a name of its own there.
	Connect(ctx context.Context, connID string) string

	// RequestMatch pairs the connection with a parked opponent for the
	// game type, or parks it while it waits for one.
	RequestMatch(ctx context.Context, connID, displayName, gameType string) error

	// SubmitMove validates and applies a move for the connection.
	SubmitMove(ctx context.Context, connID, sessionID string, cell int) error

	// SendChat relays a chat line to the session's occupants.
	SendChat(ctx context.Context, connID, sessionID, text string) error

	// Disconnect runs cleanup for a closed connection: parked queue
	// entries, occupied sessions, and the directory binding.
	Disconnect(ctx context.Context, connID string)

	// Sessions returns read-only snapshots of all live sessions.
	Sessions(ctx context.Context) []session.Snapshot
}

// Router delivers events to connections. The websocket hub implements it.
type Router interface {
	SendToConn(connID, event string, data any)
	BroadcastToSession(sessionID, event string, data any)
	BroadcastToAll(event string, data any)
	JoinSession(connID, sessionID string)
	LeaveSession(connID, sessionID string)

	// Connected reports whether the connection is still registered.
	// Pairing re-checks both sides through it after seating, since a
	// participant can drop between ticket consumption and seat
	// assignment.
	Connected(connID string) bool
}

// Scorekeeper persists win bookkeeping and the completed-game log.
type Scorekeeper interface {
	RecordWin(ctx context.Context, username string, points int) (*player.Record, error)
	LogGame(ctx context.Context, g player.GameLog) error
}

// Publisher republishes the leaderboard to all connections.
type Publisher interface {
	Republish(ctx context.Context) error
}
