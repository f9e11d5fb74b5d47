// Package api provides the HTTP surface for PlayGrid.
//
// The api package implements:
//   - Account registration and login
//   - Read-only projections of live sessions
//   - Public leaderboard and server statistics
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Accounts:
//   - POST /api/register - Create an account (claims a guest record if one exists)
//   - POST /api/login - Authenticate and receive a token
//
// Projections:
//   - GET /api/sessions - List live sessions
//   - GET /leaderboard - Top players by score
//   - GET /stats - Player, game, session and connection counts
//   - GET /health - Liveness probe
//
// Realtime:
//   - GET /ws - WebSocket upgrade; gameplay happens over this socket
//
// Request/Response Format:
//
// All endpoints accept and return JSON. The REST surface never mutates game
// state; matches, moves and chat flow exclusively through the WebSocket.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
