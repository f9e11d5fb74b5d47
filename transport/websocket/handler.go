package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/playgrid/playgrid/game/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Handler upgrades HTTP requests and dispatches inbound events to the game
// service.
type Handler struct {
	hub     *Hub
	service service.GameService
}

// NewHandler creates a WebSocket handler backed by the hub and service.
func NewHandler(hub *Hub, svc service.GameService) *Handler {
	return &Handler{hub: hub, service: svc}
}

// ServeWS handles a WebSocket upgrade request. Each accepted connection gets
// a fresh connection ID, a welcome event, and its read and write pumps.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	h.service.Connect(r.Context(), client.ID)

	go h.readPump(client)
}

// readPump pumps messages from the WebSocket connection into the service.
// When the connection drops, the hub entry and every piece of game state
// tied to the connection are cleaned up.
func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		h.service.Disconnect(context.Background(), c.ID)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error on %s: %v", c.ID, err)
			}
			break
		}
		h.dispatch(c, raw)
	}
}

// dispatch decodes one inbound envelope and runs the matching service
// operation. Failures go back to the sender only, as an error event.
func (h *Handler) dispatch(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.sendError(c, "BadMessage", "malformed envelope")
		return
	}

	if len(env.Data) == 0 {
		env.Data = []byte("{}")
	}

	ctx := context.Background()
	var err error

	switch env.Event {
	case EventRequestMatch:
		var req MatchRequest
		if err = json.Unmarshal(env.Data, &req); err == nil {
			err = h.service.RequestMatch(ctx, c.ID, req.DisplayName, req.GameType)
		}

	case EventSubmitMove:
		var req MoveRequest
		if err = json.Unmarshal(env.Data, &req); err == nil {
			err = h.service.SubmitMove(ctx, c.ID, req.SessionID, req.CellIndex)
		}

	case EventSessionChat:
		var req ChatRequest
		if err = json.Unmarshal(env.Data, &req); err == nil {
			err = h.service.SendChat(ctx, c.ID, req.SessionID, req.Text)
		}

	default:
		h.sendError(c, "BadMessage", "unknown event: "+env.Event)
		return
	}

	if err != nil {
		h.sendError(c, errorCode(err), err.Error())
	}
}

func (h *Handler) sendError(c *Client, code, message string) {
	h.hub.SendToConn(c.ID, EventError, ErrorPayload{Code: code, Message: message})
}
