// Package service is the orchestration layer between the transports and
// the game core.
//
// The GameService interface maps one-to-one onto the inbound event surface:
// request-match, submit-move, session-chat, and transport disconnect. The
// implementation wires the matchmaking queue, the session registry, the
// connection directory, and the player store together, and pushes outcomes
// through a Router (implemented by the websocket hub).
//
// Delivery rules:
//
// Positive outcomes (session-started, move-applied, session-reset, chat,
// opponent-left, leaderboard) are pushed by the service through the Router.
// Errors are returned to the caller and reported only to the originating
// connection by the transport; they are never broadcast.
//
// Locking discipline:
//
// Every operation takes at most one of the queue / registry / directory
// locks at a time, acquired sequentially and never nested, and a session's
// own mutex is only taken after all shared-table locks are released.
package service
