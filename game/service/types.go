package service

import (
	"time"

	"github.com/playgrid/playgrid/game/engine"
	"github.com/playgrid/playgrid/game/session"
)

// Outbound event names. Inbound names live with the transport that decodes
// them.
const (
	EventWelcome        = "welcome"
	EventWaiting        = "waiting-for-opponent"
	EventSessionStarted = "session-started"
	EventMoveApplied    = "move-applied"
	EventSessionReset   = "session-reset"
	EventSessionChat    = "session-chat"
	EventOpponentLeft   = "opponent-left"
)

// WelcomePayload greets a new connection with its ID and a suggested guest
// name.
type WelcomePayload struct {
	ConnID      string `json:"connId"`
	DisplayName string `json:"displayName"`
}

// WaitingPayload tells a parked requester that no opponent is available yet.
type WaitingPayload struct {
	GameType string `json:"gameType"`
	Message  string `json:"message"`
}

// SessionStartedPayload announces a freshly paired session to both seats.
type SessionStartedPayload struct {
	SessionID     string         `json:"sessionId"`
	Seats         []session.Seat `json:"seats"`
	CurrentSymbol engine.Mark    `json:"currentSymbol"`
}

// MoveAppliedPayload carries an applied move to every occupant.
type MoveAppliedPayload struct {
	CellIndex     int          `json:"cellIndex"`
	Symbol        engine.Mark  `json:"symbol"`
	Board         engine.Board `json:"board"`
	CurrentSymbol engine.Mark  `json:"currentSymbol"`
	Winner        engine.Mark  `json:"winner,omitempty"`
	IsTerminal    bool         `json:"isTerminal"`
}

// SessionResetPayload announces the automatic post-terminal reset.
type SessionResetPayload struct {
	Board         engine.Board `json:"board"`
	CurrentSymbol engine.Mark  `json:"currentSymbol"`
}

// ChatPayload relays a chat line within a session.
type ChatPayload struct {
	DisplayName string    `json:"displayName"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
}

// OpponentLeftPayload notifies the remaining occupant of a departure.
type OpponentLeftPayload struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}
