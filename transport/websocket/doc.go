// Package websocket provides the realtime transport for PlayGrid.
//
// The websocket package implements:
//   - Real-time bidirectional communication
//   - Connection identity: every accepted socket gets a fresh connection ID
//   - Session rooms for targeted broadcasting
//   - Connection lifecycle management and cleanup
//   - Inbound event dispatch into the game service
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub tracks all
// connections and their session rooms. Each client connection runs a read
// pump and a write pump in dedicated goroutines. The Hub implements the
// service.Router interface, so game logic addresses connections and
// sessions by ID without knowing about sockets.
//
// Message Protocol:
//
// Messages are JSON envelopes with an event name and a payload:
//   - Incoming: {"event": "submit-move", "data": {"sessionId": "...", "cellIndex": 4}}
//   - Outgoing: {"event": "move-applied", "data": {...}}
//
// Rejected requests come back to the sender only, as an "error" event with a
// stable code and a human-readable message. Other occupants never see them.
//
// Usage:
//
//	hub := websocket.NewHub()
//	handler := websocket.NewHandler(hub, gameService)
//	http.HandleFunc("/ws", handler.ServeWS)
//
// Connection Lifecycle:
//
// 1. Client connects and is registered with the hub
// 2. A welcome event delivers the connection ID and a suggested guest name
// 3. Client requests a match, submits moves, chats
// 4. Disconnection removes the hub entry and destroys occupied sessions
//
// Concurrency:
//
// The hub is guarded by a single RWMutex. Service goroutines and session
// reset timers call into it concurrently without blocking each other.
package websocket
