package websocket

import (
	"encoding/json"
	"errors"

	"github.com/playgrid/playgrid/game/session"
	"github.com/playgrid/playgrid/player"
)

// Inbound event names. Outbound names are owned by the service package.
const (
	EventRequestMatch = "request-match"
	EventSubmitMove   = "submit-move"
	EventSessionChat  = "session-chat"
)

// EventError carries a rejected request back to the sender only.
const EventError = "error"

// Envelope frames every message on the wire.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// MatchRequest asks to be paired for a game type.
type MatchRequest struct {
	GameType    string `json:"gameType"`
	DisplayName string `json:"displayName"`
}

// MoveRequest submits one cell for the sender's session.
type MoveRequest struct {
	SessionID string `json:"sessionId"`
	CellIndex int    `json:"cellIndex"`
}

// ChatRequest relays a chat line to the sender's session.
type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

// ErrorPayload is the private error event sent to the offending connection.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// encode marshals an outbound envelope.
func encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

// errorCode maps a service error to its stable wire code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return "SessionNotFound"
	case errors.Is(err, session.ErrNotParticipant):
		return "NotAParticipant"
	case errors.Is(err, session.ErrNotReady):
		return "NotReady"
	case errors.Is(err, session.ErrOutOfTurn):
		return "OutOfTurn"
	case errors.Is(err, session.ErrCellOccupied):
		return "CellOccupied"
	case errors.Is(err, session.ErrRoomFull):
		return "RoomFull"
	case errors.Is(err, player.ErrUsernameTaken):
		return "UsernameTaken"
	case errors.Is(err, player.ErrInvalidCredentials):
		return "InvalidCredentials"
	default:
		return "Internal"
	}
}
