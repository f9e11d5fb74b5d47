// Package player owns the durable side of the server: player records,
// credentials, the completed-game log, and the leaderboard aggregation
// published to connected clients.
//
// Records live in an embedded sqlite database (modernc.org/sqlite, no cgo).
// A record is created at registration, or lazily when an unregistered guest
// name wins its first game. Stats are mutated in exactly one place:
// RecordWin, driven by a session's terminal outcome.
package player
