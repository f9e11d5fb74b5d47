// Package matchmaking pairs waiting participants into sessions.
//
// The queue keeps a single parked ticket per game type. A request either
// consumes the parked ticket (a match, with the parked side seated first)
// or becomes the new parked ticket itself. A connection can never match
// against its own still-parked ticket; re-requesting simply refreshes it.
package matchmaking
